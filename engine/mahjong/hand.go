package mahjong

import "fmt"

// Hand 单个玩家的手牌：门前牌、副露、弃牌河与立直标记。
// 引擎只做纯计算，巡目推进与振听时序由编排层维护
type Hand struct {
	Tiles    []Tile // 门前（未副露）的牌
	Melds    []Meld // 已宣布的副露，含暗杠
	Discards []Tile // 弃牌河
	Riichi   bool

	searcher *Searcher
}

// NewHand 配牌建手。张数不在这里强校验：和牌与听牌查询入口会按
// 门前张数 + 3×副露数 == 13 的不变量拒绝非法快照
func NewHand(tiles []Tile) *Hand {
	own := make([]Tile, len(tiles))
	copy(own, tiles)
	SortTiles(own)
	return &Hand{
		Tiles:    own,
		Melds:    make([]Meld, 0, 4),
		Discards: make([]Tile, 0, 24),
		searcher: NewSearcher(),
	}
}

// IsConcealed 是否门清。暗杠不破门清
func (h *Hand) IsConcealed() bool {
	for _, m := range h.Melds {
		if !m.Concealed {
			return false
		}
	}
	return true
}

// Counts 门前牌的牌种计数
func (h *Hand) Counts() Hand34 {
	c, _ := Hand34FromTiles(h.Tiles)
	return c
}

// effectiveSize 门前张数按副露折算后的有效张数，听牌状态恒为 13
func (h *Hand) effectiveSize() int {
	return len(h.Tiles) + 3*len(h.Melds)
}

func (h *Hand) mustWaitingSize() {
	if h.effectiveSize() != 13 {
		panic(fmt.Errorf("%w: 门前 %d 张、副露 %d 组", ErrHandSize, len(h.Tiles), len(h.Melds)))
	}
}

// Draw 摸牌
func (h *Hand) Draw(t Tile) {
	h.Tiles = append(h.Tiles, t)
	SortTiles(h.Tiles)
}

// Discard 打牌。牌不在门前时返回错误，手牌不变
func (h *Hand) Discard(t Tile) error {
	idx := -1
	for i, held := range h.Tiles {
		if held.Type == t.Type && held.ID == t.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		for i, held := range h.Tiles {
			if held.Type == t.Type {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrTileNotInHand, t)
	}
	discarded := h.Tiles[idx]
	h.Tiles = append(h.Tiles[:idx], h.Tiles[idx+1:]...)
	h.Discards = append(h.Discards, discarded)
	return nil
}

// HasDiscarded 弃牌河中是否出现过该牌种，供编排层做振听判断
func (h *Hand) HasDiscarded(tt TileType) bool {
	for _, t := range h.Discards {
		if t.Type == tt {
			return true
		}
	}
	return false
}

// DeclareRiichi 立直。要求门清且听牌
func (h *Hand) DeclareRiichi() error {
	if !h.IsConcealed() {
		return fmt.Errorf("%w: 立直要求门清", ErrCannotRiichi)
	}
	if !h.IsTenpai() {
		return fmt.Errorf("%w: 立直要求听牌", ErrCannotRiichi)
	}
	h.Riichi = true
	return nil
}

// takeTiles 从门前取出指定牌种各一张，全部命中才执行删除。
// 同种牌优先保留赤宝牌（取 ID 大的普通牌）
func (h *Hand) takeTiles(types ...TileType) ([]Tile, bool) {
	counts := h.Counts()
	var need [TileKinds]int
	for _, tt := range types {
		need[int(tt)]++
		if need[int(tt)] > int(counts[int(tt)]) {
			return nil, false
		}
	}

	taken := make([]Tile, 0, len(types))
	for _, tt := range types {
		best := -1
		for i, held := range h.Tiles {
			if held.Type != tt {
				continue
			}
			if best == -1 || held.ID > h.Tiles[best].ID {
				best = i
			}
		}
		taken = append(taken, h.Tiles[best])
		h.Tiles = append(h.Tiles[:best], h.Tiles[best+1:]...)
	}
	return taken, true
}

// Pon 碰。from 是被鸣牌的座位
func (h *Hand) Pon(t Tile, from int) (Meld, error) {
	if !h.CanPon(t) {
		return Meld{}, fmt.Errorf("%w: %s", ErrCannotPon, t)
	}
	taken, _ := h.takeTiles(t.Type, t.Type)
	meld, err := NewMeld(MeldTriplet, append(taken, t), false, from)
	if err != nil {
		return Meld{}, err
	}
	h.Melds = append(h.Melds, meld)
	return meld, nil
}

// Chi 吃。opt 必须出自 ChiOptions 的枚举
func (h *Hand) Chi(t Tile, opt ChiOption, from int) (Meld, error) {
	valid := false
	for _, o := range h.ChiOptions(t) {
		if o[0].Type == opt[0].Type && o[1].Type == opt[1].Type {
			valid = true
			break
		}
	}
	if !valid {
		return Meld{}, fmt.Errorf("%w: %s + %s%s", ErrCannotChi, t, opt[0], opt[1])
	}
	taken, ok := h.takeTiles(opt[0].Type, opt[1].Type)
	if !ok {
		return Meld{}, fmt.Errorf("%w: %s", ErrCannotChi, t)
	}
	meld, err := NewMeld(MeldSequence, append(taken, t), false, from)
	if err != nil {
		return Meld{}, err
	}
	h.Melds = append(h.Melds, meld)
	return meld, nil
}

// OpenKan 大明杠
func (h *Hand) OpenKan(t Tile, from int) (Meld, error) {
	if !h.CanOpenKan(t) {
		return Meld{}, fmt.Errorf("%w: 明杠 %s", ErrCannotKan, t)
	}
	taken, _ := h.takeTiles(t.Type, t.Type, t.Type)
	meld, err := NewMeld(MeldQuad, append(taken, t), false, from)
	if err != nil {
		return Meld{}, err
	}
	h.Melds = append(h.Melds, meld)
	return meld, nil
}

// Ankan 暗杠
func (h *Hand) Ankan(tt TileType) (Meld, error) {
	counts := h.Counts()
	if counts[int(tt)] < 4 {
		return Meld{}, fmt.Errorf("%w: 暗杠 %s", ErrCannotKan, tt)
	}
	taken, _ := h.takeTiles(tt, tt, tt, tt)
	meld, err := NewMeld(MeldQuad, taken, true, -1)
	if err != nil {
		return Meld{}, err
	}
	h.Melds = append(h.Melds, meld)
	return meld, nil
}

// Kakan 加杠：摸到第四张后升级已有的碰。升级后的杠子仍按明杠计符
func (h *Hand) Kakan(tt TileType) (Meld, error) {
	meldIdx := -1
	for i, m := range h.Melds {
		if m.Kind == MeldTriplet && !m.Concealed && m.BaseType() == tt {
			meldIdx = i
			break
		}
	}
	if meldIdx == -1 {
		return Meld{}, fmt.Errorf("%w: %s", ErrMeldNotFound, tt)
	}
	taken, ok := h.takeTiles(tt)
	if !ok {
		return Meld{}, fmt.Errorf("%w: 加杠 %s", ErrCannotKan, tt)
	}

	old := h.Melds[meldIdx]
	upgraded, err := NewMeld(MeldQuad, append(old.Tiles, taken[0]), false, old.From)
	if err != nil {
		return Meld{}, err
	}
	h.Melds[meldIdx] = upgraded
	return upgraded, nil
}

// IsWinningHand 和牌判定：门前牌加上和牌张，能否构成至少一种和牌文法
func (h *Hand) IsWinningHand(win Tile) bool {
	h.mustWaitingSize()
	counts := h.Counts()
	counts[int(win.Type)]++
	return h.searcher.IsAgariAll(counts, len(h.Melds))
}

// WinningCombinations 枚举普通牌型的全部分解。七对子与国士无双没有
// 面子结构，由役种评估直接特判，这里不产出条目
func (h *Hand) WinningCombinations(win Tile) []Decomposition {
	h.mustWaitingSize()
	counts := h.Counts()
	counts[int(win.Type)]++
	return Decompose(counts, h.Melds)
}

// IsTenpai 是否听牌
func (h *Hand) IsTenpai() bool {
	return len(h.WaitingTiles()) > 0
}

// WaitingTiles 枚举听牌。对未变更的手牌重复调用结果一致
func (h *Hand) WaitingTiles() []TileType {
	h.mustWaitingSize()
	waits, _ := h.searcher.WaitsAndUkeire(h.Counts(), len(h.Melds), nil)
	return waits
}

// Shanten 向听数
func (h *Hand) Shanten() int {
	return h.searcher.ShantenAll(h.Counts(), len(h.Melds))
}

// DiscardCandidates 摸牌后的弃牌候选：打哪张还听牌，听什么、剩几张进张。
// visible 为场上已亮出的牌种计数，传 nil 时按牌山全满计
func (h *Hand) DiscardCandidates(draw Tile, visible *[TileKinds]uint8) []Candidate {
	h.mustWaitingSize()
	hand14 := make([]Tile, 0, len(h.Tiles)+1)
	hand14 = append(hand14, h.Tiles...)
	hand14 = append(hand14, draw)
	return h.searcher.SeekCandidates(hand14, len(h.Melds), visible)
}

// AllTiles 含副露与和牌张的实体牌全集，供宝牌统计
func (h *Hand) AllTiles(win Tile) []Tile {
	out := make([]Tile, 0, 14+len(h.Melds))
	out = append(out, h.Tiles...)
	for _, m := range h.Melds {
		out = append(out, m.Tiles...)
	}
	out = append(out, win)
	return out
}
