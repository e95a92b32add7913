package mahjong

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	TileKinds = 34
	TileLimit = 136
)

type Tile struct {
	Type TileType
	ID   int // 用于区分相同的牌（0-3）。对于数牌5，ID=0表示赤宝牌，ID=1-3表示普通牌
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= White && t <= Red
}

// IsTerminal 是否数牌幺九（1、9）
func (t TileType) IsTerminal() bool {
	if !t.IsNumbered() {
		return false
	}
	n := t.Number()
	return n == 1 || n == 9
}

// IsYaochu 是否幺九牌（数牌1、9或字牌）
func (t TileType) IsYaochu() bool {
	return t.IsHonor() || t.IsTerminal()
}

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

// Suit 花色：0=万 1=筒 2=索 -1=字牌
func (t TileType) Suit() int {
	switch {
	case t >= Man1 && t <= Man9:
		return 0
	case t >= Pin1 && t <= Pin9:
		return 1
	case t >= So1 && t <= So9:
		return 2
	default:
		return -1
	}
}

// Number 数牌面值（1-9），字牌返回 0
func (t TileType) Number() int {
	switch {
	case t >= Man1 && t <= Man9:
		return int(t-Man1) + 1
	case t >= Pin1 && t <= Pin9:
		return int(t-Pin1) + 1
	case t >= So1 && t <= So9:
		return int(t-So1) + 1
	default:
		return 0
	}
}

func (t TileType) String() string {
	if t.IsHonor() {
		return fmt.Sprintf("%dz", int(t-East)+1)
	}
	suits := [3]string{"m", "p", "s"}
	s := t.Suit()
	if s < 0 {
		return "?"
	}
	return fmt.Sprintf("%d%s", t.Number(), suits[s])
}

// WindTile 风对应的字牌
func (w Wind) WindTile() TileType {
	return East + TileType(w)
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// IsRedFive 判断是否为赤宝牌（ID=0且为数牌5）
func (t Tile) IsRedFive() bool {
	return t.ID == 0 && t.Type.IsFive()
}

func (t Tile) String() string {
	if t.IsRedFive() {
		return "[" + t.Type.String() + "]"
	}
	return t.Type.String()
}

// KokushiTileTypes 国士无双的 13 种幺九牌
var KokushiTileTypes = [13]TileType{
	Man1, Man9, Pin1, Pin9, So1, So9,
	East, South, West, North, White, Green, Red,
}

// DoraFromIndicator 宝牌指示牌 -> 宝牌。数牌 9 回绕到 1，风牌东南西北循环，三元牌白发中循环
func DoraFromIndicator(indicator TileType) TileType {
	switch {
	case indicator.IsNumbered():
		if indicator.Number() == 9 {
			return indicator - 8
		}
		return indicator + 1
	case indicator.IsWind():
		if indicator == North {
			return East
		}
		return indicator + 1
	default:
		if indicator == Red {
			return White
		}
		return indicator + 1
	}
}

var suitOffsets = map[byte]TileType{'m': Man1, 'p': Pin1, 's': So1, 'z': East}

// ParseTiles 解析牌谱字符串，如 "1m2m3m4p5p6p"，赤宝牌用中括号包裹："[5p]6p7p"
func ParseTiles(s string) ([]Tile, error) {
	tiles := make([]Tile, 0, 14)
	normalSeen := make(map[TileType]int, TileKinds)
	i := 0
	for i < len(s) {
		c := s[i]
		red := false
		if c == '[' {
			red = true
			i++
			if i >= len(s) {
				return nil, fmt.Errorf("%w: 中括号未闭合 %q", ErrInvalidTileString, s)
			}
			c = s[i]
		}
		if c < '1' || c > '9' {
			return nil, fmt.Errorf("%w: 非法数字 %q 位置 %d", ErrInvalidTileString, s, i)
		}
		rank := int(c - '0')
		i++
		if i >= len(s) {
			return nil, fmt.Errorf("%w: 缺少花色后缀 %q", ErrInvalidTileString, s)
		}
		base, ok := suitOffsets[s[i]]
		if !ok {
			return nil, fmt.Errorf("%w: 非法花色 %q 位置 %d", ErrInvalidTileString, s, i)
		}
		if s[i] == 'z' && rank > 7 {
			return nil, fmt.Errorf("%w: 字牌面值超界 %q", ErrInvalidTileString, s)
		}
		i++
		if red {
			if i >= len(s) || s[i] != ']' {
				return nil, fmt.Errorf("%w: 中括号未闭合 %q", ErrInvalidTileString, s)
			}
			i++
		}
		tt := base + TileType(rank-1)
		if red && !tt.IsFive() {
			return nil, fmt.Errorf("%w: 赤宝牌只能是数牌5 %q", ErrInvalidTileString, s)
		}
		id := 0
		if !red {
			normalSeen[tt]++
			id = normalSeen[tt]
		}
		tiles = append(tiles, Tile{Type: tt, ID: id})
	}
	return tiles, nil
}

// FormatTiles 牌列表 -> 牌谱字符串
func FormatTiles(tiles []Tile) string {
	var b strings.Builder
	for _, t := range tiles {
		b.WriteString(t.String())
	}
	return b.String()
}

// SortTiles 按牌种排序，赤宝牌排在同种普通牌之前
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Type != tiles[j].Type {
			return tiles[i].Type < tiles[j].Type
		}
		return tiles[i].ID < tiles[j].ID
	})
}

type Situation struct {
	DealerIndex  int  // 庄家座位(0-3)
	Honba        int  // 本场数
	RoundWind    Wind // 场风
	RoundNumber  int  // 局数(1-4)
	RiichiSticks int  // 立直棒数量
}

// SeatWind 座位在本局的自风，从庄家起东南西北顺延
func (s *Situation) SeatWind(seat int) Wind {
	return Wind(((seat-s.DealerIndex)%4 + 4) % 4)
}

// NewSettleRequest 由局况生成结算请求骨架，放铳与包牌座位由调用方补齐
func (s *Situation) NewSettleRequest(winnerSeat int) *SettleRequest {
	return &SettleRequest{
		WinnerSeat:    winnerSeat,
		DiscarderSeat: -1,
		PaoSeat:       -1,
		Honba:         s.Honba,
		RiichiSticks:  s.RiichiSticks,
	}
}

type Wang struct {
	DeadWall          []Tile // 岭上牌
	DoraIndicators    []Tile // 宝牌指示牌
	UraDoraIndicators []Tile // 里宝牌指示牌
}

type DeckManager struct {
	wall        []Tile
	wallIndex   int
	wang        Wang
	remain34    [TileKinds]int
	rng         *rand.Rand
	useRedFives bool
}

func NewDeckManager(useRedFives bool) *DeckManager {
	return &DeckManager{
		wall:      make([]Tile, 0, TileLimit),
		wallIndex: 0,
		wang: Wang{
			DeadWall:          make([]Tile, 0, 14),
			DoraIndicators:    make([]Tile, 0, 5),
			UraDoraIndicators: make([]Tile, 0, 5),
		},
		remain34:    [TileKinds]int{},
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		useRedFives: useRedFives,
	}
}

func (dm *DeckManager) InitRound() {
	deck := NewTileDeck(dm.useRedFives)
	dm.rng.Shuffle(len(deck.tiles), func(i, j int) {
		deck.tiles[i], deck.tiles[j] = deck.tiles[j], deck.tiles[i]
	})

	dm.wall = dm.wall[:0]
	dm.wallIndex = 0
	dm.wang.DeadWall = dm.wang.DeadWall[:0]
	dm.wang.DoraIndicators = dm.wang.DoraIndicators[:0]
	dm.wang.UraDoraIndicators = dm.wang.UraDoraIndicators[:0]

	for i := 0; i < TileKinds; i++ {
		dm.remain34[i] = 4
	}

	if len(deck.tiles) <= 14 {
		return
	}

	// 牌山末尾 14 张作王牌
	deadStart := len(deck.tiles) - 14
	dm.wall = append(dm.wall, deck.tiles[:deadStart]...)
	dm.wang.DeadWall = append(dm.wang.DeadWall, deck.tiles[deadStart:]...)
}

func (dm *DeckManager) Draw() (Tile, bool) {
	if dm.wallIndex >= len(dm.wall) {
		return Tile{}, false
	}
	t := dm.wall[dm.wallIndex]
	dm.wallIndex++
	dm.remain34[int(t.Type)]--
	return t, true
}

func (dm *DeckManager) Deal() (Tile, bool) {
	return dm.Draw()
}

// DrawReplacement 杠后从岭上摸牌
func (dm *DeckManager) DrawReplacement() (Tile, bool) {
	if len(dm.wang.DeadWall) == 0 {
		return Tile{}, false
	}
	last := len(dm.wang.DeadWall) - 1
	t := dm.wang.DeadWall[last]
	dm.wang.DeadWall = dm.wang.DeadWall[:last]
	dm.remain34[int(t.Type)]--
	return t, true
}

func (dm *DeckManager) RevealDoraIndicator() (Tile, bool) {
	if len(dm.wang.DeadWall) == 0 {
		return Tile{}, false
	}
	t := dm.wang.DeadWall[0]
	dm.wang.DeadWall = dm.wang.DeadWall[1:]
	dm.wang.DoraIndicators = append(dm.wang.DoraIndicators, t)
	dm.remain34[int(t.Type)]--
	return t, true
}

func (dm *DeckManager) RevealUraDoraIndicator() (Tile, bool) {
	if len(dm.wang.DeadWall) == 0 {
		return Tile{}, false
	}
	t := dm.wang.DeadWall[0]
	dm.wang.DeadWall = dm.wang.DeadWall[1:]
	dm.wang.UraDoraIndicators = append(dm.wang.UraDoraIndicators, t)
	return t, true
}

func (dm *DeckManager) Remaining() int {
	return len(dm.wall) - dm.wallIndex
}

func (dm *DeckManager) Visible34(dst *[TileKinds]uint8) {
	for i := 0; i < TileKinds; i++ {
		v := 4 - dm.remain34[i]
		if v < 0 {
			v = 0
		}
		if v > 4 {
			v = 4
		}
		dst[i] = uint8(v)
	}
}

func (dm *DeckManager) Wang() *Wang {
	return &dm.wang
}

// CountDora 统计一手牌的宝牌数：指示牌宝牌 + 赤宝牌，立直时再加里宝牌
func (dm *DeckManager) CountDora(tiles []Tile, isRiichi bool) int {
	return CountDora(tiles, dm.wang.DoraIndicators, dm.wang.UraDoraIndicators, isRiichi)
}

// CountDora 宝牌聚合：指示牌翻出的宝牌、赤宝牌，以及立直限定的里宝牌
func CountDora(tiles []Tile, indicators []Tile, uraIndicators []Tile, isRiichi bool) int {
	var doraTypes [TileKinds]int
	for _, ind := range indicators {
		doraTypes[int(DoraFromIndicator(ind.Type))]++
	}
	if isRiichi {
		for _, ind := range uraIndicators {
			doraTypes[int(DoraFromIndicator(ind.Type))]++
		}
	}

	count := 0
	for _, t := range tiles {
		count += doraTypes[int(t.Type)]
		if t.IsRedFive() {
			count++
		}
	}
	return count
}

type TileDeck struct {
	tiles []Tile
}

func NewTileDeck(useRedFives bool) *TileDeck {
	deck := &TileDeck{
		tiles: make([]Tile, 0, TileLimit),
	}
	deck.initializeTiles(useRedFives)
	return deck
}

func (d *TileDeck) initializeTiles(useRedFives bool) {
	d.tiles = d.tiles[:0]
	// 生成数牌（万、筒、索）
	d.generateSuitTiles(Man1, Man9, useRedFives)
	d.generateSuitTiles(Pin1, Pin9, useRedFives)
	d.generateSuitTiles(So1, So9, useRedFives)
	// 生成字牌（风牌和箭牌）
	d.generateHonorTiles(East, Red)
}

// generateSuitTiles 生成一种花色的数牌。启用赤宝牌时每色 5 的 ID=0 那张作赤牌
func (d *TileDeck) generateSuitTiles(start, end TileType, useRedFives bool) {
	for tileType := start; tileType <= end; tileType++ {
		for i := 0; i < 4; i++ {
			id := i
			if !useRedFives && tileType.IsFive() && i == 0 {
				id = 4 // 不启用赤牌时避开 ID=0 的赤牌标记
			}
			d.tiles = append(d.tiles, Tile{
				Type: tileType,
				ID:   id,
			})
		}
	}
}

func (d *TileDeck) generateHonorTiles(start, end TileType) {
	for tileType := start; tileType <= end; tileType++ {
		for i := 0; i < 4; i++ {
			d.tiles = append(d.tiles, Tile{
				Type: tileType,
				ID:   i,
			})
		}
	}
}
