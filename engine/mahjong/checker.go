package mahjong

// ChiOption 吃牌时从门前出的两张牌
type ChiOption [2]Tile

// CanPon 门前至少两张同种牌
func (h *Hand) CanPon(t Tile) bool {
	counts := h.Counts()
	return counts[int(t.Type)] >= 2
}

// ChiOptions 枚举全部可行的吃法。一张牌可能补完多个不同顺子
// （如持 3-4 与 5-6 时鸣 4），每种都要给出。同种牌有赤普两张时
// 取普通那张，换用赤牌由调用方自行调整
func (h *Hand) ChiOptions(t Tile) []ChiOption {
	if t.Type.Suit() < 0 {
		return nil
	}
	counts := h.Counts()
	n := t.Type.Number()

	pick := func(tt TileType) (Tile, bool) {
		if counts[int(tt)] == 0 {
			return Tile{}, false
		}
		best := -1
		for i, held := range h.Tiles {
			if held.Type != tt {
				continue
			}
			if best == -1 || held.ID > h.Tiles[best].ID {
				best = i
			}
		}
		return h.Tiles[best], best >= 0
	}

	var out []ChiOption
	// 三种相对位置：低位吃、嵌吃、高位吃
	for _, offsets := range [3][2]int{{-2, -1}, {-1, 1}, {1, 2}} {
		na, nb := n+offsets[0], n+offsets[1]
		if na < 1 || nb > 9 {
			continue
		}
		a, okA := pick(t.Type + TileType(offsets[0]))
		b, okB := pick(t.Type + TileType(offsets[1]))
		if okA && okB {
			out = append(out, ChiOption{a, b})
		}
	}
	return out
}

// CanChi 是否存在至少一种吃法
func (h *Hand) CanChi(t Tile) bool {
	return len(h.ChiOptions(t)) > 0
}

// CanOpenKan 门前有三张同种牌可大明杠
func (h *Hand) CanOpenKan(t Tile) bool {
	counts := h.Counts()
	return counts[int(t.Type)] >= 3
}

// AnkanOptions 门前凑满四张、可以暗杠的牌种
func (h *Hand) AnkanOptions() []TileType {
	counts := h.Counts()
	var out []TileType
	for i := 0; i < TileKinds; i++ {
		if counts[i] >= 4 {
			out = append(out, TileType(i))
		}
	}
	return out
}

// KakanOptions 摸到第四张、可加杠的牌种（已有对应的碰）
func (h *Hand) KakanOptions() []TileType {
	counts := h.Counts()
	var out []TileType
	for _, m := range h.Melds {
		if m.Kind == MeldTriplet && !m.Concealed && counts[int(m.BaseType())] >= 1 {
			out = append(out, m.BaseType())
		}
	}
	return out
}

// CanKan 是否存在任一种杠：大明杠、暗杠或加杠
func (h *Hand) CanKan(t Tile) bool {
	if h.CanOpenKan(t) {
		return true
	}
	if len(h.AnkanOptions()) > 0 {
		return true
	}
	return len(h.KakanOptions()) > 0
}
