package mahjong

import "fmt"

type MeldKind int

const (
	MeldPair     MeldKind = iota // 对子
	MeldSequence                 // 顺子
	MeldTriplet                  // 刻子
	MeldQuad                     // 杠子
)

func (k MeldKind) String() string {
	switch k {
	case MeldPair:
		return "pair"
	case MeldSequence:
		return "sequence"
	case MeldTriplet:
		return "triplet"
	case MeldQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// tileCount 各类面子要求的张数
func (k MeldKind) tileCount() int {
	switch k {
	case MeldPair:
		return 2
	case MeldQuad:
		return 4
	default:
		return 3
	}
}

// Meld 副露或暗杠。Concealed 区分暗杠与吃碰明杠：
// 碰升级来的加杠即便第四张是自摸的，符数上仍按明杠算
type Meld struct {
	Kind      MeldKind
	Tiles     []Tile
	Concealed bool
	From      int // 被鸣牌的玩家座位，暗杠为 -1
}

// NewMeld 构造面子，张数或结构不满足约束时返回 ErrInvalidMeld。
// 公开的吃碰杠入口先做数量校验，这里的拒绝只会在调用方出错时出现
func NewMeld(kind MeldKind, tiles []Tile, concealed bool, from int) (Meld, error) {
	if len(tiles) != kind.tileCount() {
		return Meld{}, fmt.Errorf("%w: %s 需要 %d 张，收到 %d 张", ErrInvalidMeld, kind, kind.tileCount(), len(tiles))
	}

	own := make([]Tile, len(tiles))
	copy(own, tiles)
	SortTiles(own)

	switch kind {
	case MeldSequence:
		a, b, c := own[0].Type, own[1].Type, own[2].Type
		if a.Suit() < 0 || a.Suit() != b.Suit() || a.Suit() != c.Suit() {
			return Meld{}, fmt.Errorf("%w: 顺子必须是同一花色的数牌", ErrInvalidMeld)
		}
		if b != a+1 || c != a+2 {
			return Meld{}, fmt.Errorf("%w: 顺子必须连续 %s%s%s", ErrInvalidMeld, a, b, c)
		}
	default:
		for _, t := range own[1:] {
			if t.Type != own[0].Type {
				return Meld{}, fmt.Errorf("%w: %s 的牌必须同种", ErrInvalidMeld, kind)
			}
		}
	}

	return Meld{Kind: kind, Tiles: own, Concealed: concealed, From: from}, nil
}

// BaseType 面子的基准牌种，顺子取最小的一张
func (m Meld) BaseType() TileType {
	return m.Tiles[0].Type
}

// Group 和牌分解中的一个单元。Base 对顺子是最小牌种。
// Concealed 对手牌中拆出的单元恒为真，对副露沿用副露自身的标记
type Group struct {
	Kind      MeldKind
	Base      TileType
	Concealed bool
}

// Tiles 展开该单元包含的牌种
func (g Group) Tiles() []TileType {
	if g.Kind == MeldSequence {
		return []TileType{g.Base, g.Base + 1, g.Base + 2}
	}
	out := make([]TileType, g.Kind.tileCount())
	for i := range out {
		out[i] = g.Base
	}
	return out
}

// ContainsType 单元是否包含该牌种
func (g Group) ContainsType(tt TileType) bool {
	if g.Kind == MeldSequence {
		return tt >= g.Base && tt <= g.Base+2
	}
	return tt == g.Base
}

// Decomposition 一次完整的和牌分解：恰好一个对子加四个面子。
// 七对子与国士无双没有面子结构，用空分解特殊处理
type Decomposition []Group

// Pair 分解中的对子单元
func (d Decomposition) Pair() (Group, bool) {
	for _, g := range d {
		if g.Kind == MeldPair {
			return g, true
		}
	}
	return Group{}, false
}

// TypeCounts 分解覆盖的全部牌种计数
func (d Decomposition) TypeCounts() [TileKinds]int {
	var counts [TileKinds]int
	for _, g := range d {
		for _, tt := range g.Tiles() {
			counts[int(tt)]++
		}
	}
	return counts
}

func (g Group) String() string {
	return fmt.Sprintf("%s(%s)", g.Kind, g.Base)
}

// groupOfMeld 副露对应的分解单元
func groupOfMeld(m Meld) Group {
	return Group{Kind: m.Kind, Base: m.BaseType(), Concealed: m.Concealed}
}
