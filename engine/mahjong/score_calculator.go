package mahjong

import "sort"

// WaitKind 听牌形态，决定符数加成
type WaitKind int

const (
	WaitRyanmen WaitKind = iota // 两面听
	WaitShanpon                 // 双碰听
	WaitPenchan                 // 边张听
	WaitKanchan                 // 嵌张听
	WaitTanki                   // 单骑听
)

var waitKindNames = map[WaitKind]string{
	WaitRyanmen: "ryanmen",
	WaitShanpon: "shanpon",
	WaitPenchan: "penchan",
	WaitKanchan: "kanchan",
	WaitTanki:   "tanki",
}

func (w WaitKind) String() string { return waitKindNames[w] }

// ClassifyWait 判定和牌张在分解中的听牌形态。雀头优先，
// 其次按照分解顺序找到第一个包含和牌张的顺子
func ClassifyWait(d Decomposition, win TileType) WaitKind {
	if pair, ok := d.Pair(); ok && pair.Base == win {
		return WaitTanki
	}
	for _, g := range d {
		if g.Kind != MeldSequence || !g.ContainsType(win) {
			continue
		}
		switch win - g.Base {
		case 1:
			return WaitKanchan
		case 0:
			if g.Base.Number() == 7 {
				return WaitPenchan
			}
			return WaitRyanmen
		case 2:
			if g.Base.Number() == 1 {
				return WaitPenchan
			}
			return WaitRyanmen
		}
	}
	for _, g := range tripletGroups(d) {
		if g.Base == win {
			return WaitShanpon
		}
	}
	return WaitRyanmen
}

func roundUpTo10(n int) int {
	return (n + 9) / 10 * 10
}

func roundUpTo100(n int) int {
	return (n + 99) / 100 * 100
}

func hasYaku(results []YakuResult, id Yaku) bool {
	for _, r := range results {
		if r.ID == id {
			return true
		}
	}
	return false
}

// groupFu 面子符。刻子明4暗8、杠明16暗32，幺九再翻倍
func groupFu(g Group) int {
	fu := 0
	switch g.Kind {
	case MeldTriplet:
		fu = 4
	case MeldQuad:
		fu = 16
	default:
		return 0
	}
	if g.Base.IsYaochu() {
		fu *= 2
	}
	if g.Concealed {
		fu *= 2
	}
	return fu
}

// pairFu 役牌雀头符，连风累加
func pairFu(pair Group, ctx *WinContext) int {
	fu := 0
	if pair.Base.IsDragon() {
		fu += 2
	}
	if pair.Base == ctx.RoundWind.WindTile() {
		fu += 2
	}
	if pair.Base == ctx.SeatWind.WindTile() {
		fu += 2
	}
	return fu
}

// CalculateFu 算符。七对子定 25 符，平和自摸 30 荣和 20，
// 其余从 20 底符累加后向上取整到 10
func CalculateFu(h *Hand, d Decomposition, ctx *WinContext, results []YakuResult) int {
	if hasYaku(results, YakuChiitoi) {
		return 25
	}
	if d == nil {
		for _, r := range results {
			if r.Yakuman > 0 {
				// 国士无双等按役满计点，符数不参与
				return 0
			}
		}
		// 特殊牌型走普通翻数计点时（如两翻档的人和）仍需算符
		counts := h.Counts()
		counts[int(ctx.WinTile.Type)]++
		if IsAgariChiitoi(counts) {
			return 25
		}
		fu := 20
		if !ctx.IsTsumo && h.IsConcealed() {
			fu += 10
		}
		if ctx.IsTsumo {
			fu += 2
		}
		return roundUpTo10(fu)
	}
	if hasYaku(results, YakuPinfu) {
		if ctx.IsTsumo {
			return 30
		}
		return 20
	}

	fu := 20
	if !ctx.IsTsumo && h.IsConcealed() {
		fu += 10
	}
	if ctx.IsTsumo {
		fu += 2
	}
	for _, g := range d {
		fu += groupFu(g)
	}
	if pair, ok := d.Pair(); ok {
		fu += pairFu(pair, ctx)
	}
	switch ClassifyWait(d, ctx.WinTile.Type) {
	case WaitTanki, WaitKanchan, WaitPenchan:
		fu += 2
	}
	return roundUpTo10(fu)
}

// basePoints 底分。役满 8000 按倍数叠加，累计 13 翻按役满计，
// 普通翻数查满贯档位，其余 符×2^(翻+2) 封顶 2000
func basePoints(han, fu, yakuman int, rules *Ruleset) int {
	if yakuman > 0 {
		return 8000 * yakuman
	}
	switch {
	case han >= 13:
		return 8000
	case han >= 11:
		return 6000
	case han >= 8:
		return 4000
	case han >= 6:
		return 3000
	case han >= 5:
		return 2000
	case han == 4 && fu >= 40:
		return 2000
	}
	if rules.KiriageMangan && (han == 4 && fu == 30 || han == 3 && fu == 60) {
		return 2000
	}
	base := fu * (1 << uint(han+2))
	if base > 2000 {
		base = 2000
	}
	return base
}

// ScoreResult 一次和牌的结算结果
type ScoreResult struct {
	Yaku          []YakuResult
	Decomposition Decomposition
	Han           int
	Fu            int
	Yakuman       int
	DoraHan       int
	Base          int
	Total         int         // 和牌者实收，含本场与立直棒
	Payments      map[int]int // 座位 -> 支出
}

// SettleRequest 结算上下文，座位号 0-3，-1 表示不适用
type SettleRequest struct {
	WinnerSeat     int
	DiscarderSeat  int // 荣和时的放铳者，自摸为 -1
	PaoSeat        int // 包牌承担者，无包牌为 -1
	Honba          int
	RiichiSticks   int
	DoraIndicators []Tile
	UraIndicators  []Tile
	PlayerCount    int
}

func (req *SettleRequest) players() int {
	if req.PlayerCount == 0 {
		return 4
	}
	return req.PlayerCount
}

// splitPayments 按底分算各家支出
func splitPayments(base int, ctx *WinContext, req *SettleRequest) map[int]int {
	payments := make(map[int]int, req.players())
	if ctx.IsTsumo {
		for seat := 0; seat < req.players(); seat++ {
			if seat == req.WinnerSeat {
				continue
			}
			due := base
			if ctx.IsDealer || seat == dealerSeat(ctx, req) {
				due = 2 * base
			}
			payments[seat] = roundUpTo100(due) + 100*req.Honba
		}
		return payments
	}
	due := 4 * base
	if ctx.IsDealer {
		due = 6 * base
	}
	payments[req.DiscarderSeat] = roundUpTo100(due) + 300*req.Honba
	return payments
}

func dealerSeat(ctx *WinContext, req *SettleRequest) int {
	if ctx.IsDealer {
		return req.WinnerSeat
	}
	// 庄家座位由自风推出：东起顺延
	return ((req.WinnerSeat-int(ctx.SeatWind))%req.players() + req.players()) % req.players()
}

// applyPao 包牌转嫁。自摸全额由包牌者承担，
// 荣和与放铳者对半，包牌者即放铳者时不再拆分
func applyPao(payments map[int]int, ctx *WinContext, req *SettleRequest) map[int]int {
	if req.PaoSeat < 0 {
		return payments
	}
	total := 0
	for _, v := range payments {
		total += v
	}
	if ctx.IsTsumo || req.PaoSeat == req.DiscarderSeat {
		return map[int]int{req.PaoSeat: total}
	}
	half := roundUpTo100(total / 2)
	return map[int]int{
		req.PaoSeat:       half,
		req.DiscarderSeat: total - half,
	}
}

// Calculate 从已评出的役种算完整点数。无役返回 ErrNoYaku
func Calculate(h *Hand, d Decomposition, ctx *WinContext, results []YakuResult, req *SettleRequest) (*ScoreResult, error) {
	if len(results) == 0 {
		return nil, ErrNoYaku
	}
	han, yakuman := 0, 0
	for _, r := range results {
		han += r.Han
		yakuman += r.Yakuman
	}
	doraHan := 0
	if yakuman == 0 {
		doraHan = CountDora(h.AllTiles(ctx.WinTile), req.DoraIndicators, req.UraIndicators, h.Riichi)
		han += doraHan
	}

	fu := CalculateFu(h, d, ctx, results)
	base := basePoints(han, fu, yakuman, ctx.ruleset())
	payments := applyPao(splitPayments(base, ctx, req), ctx, req)

	total := 1000 * req.RiichiSticks
	for _, v := range payments {
		total += v
	}
	return &ScoreResult{
		Yaku:          results,
		Decomposition: d,
		Han:           han,
		Fu:            fu,
		Yakuman:       yakuman,
		DoraHan:       doraHan,
		Base:          base,
		Total:         total,
		Payments:      payments,
	}, nil
}

// Settle 对和牌做完整结算：枚举所有标准分解与特殊牌型，
// 逐个评役算点，取 (总点, 翻, 符) 最高的一种
func (h *Hand) Settle(win Tile, ctx *WinContext, req *SettleRequest) (*ScoreResult, error) {
	if !h.IsWinningHand(win) {
		return nil, ErrNotAgari
	}
	ctx.WinTile = win

	var candidates []*ScoreResult
	for _, d := range h.WinningCombinations(win) {
		results := EvaluateYaku(h, win, d, ctx)
		r, err := Calculate(h, d, ctx, results, req)
		if err != nil {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(h.Melds) == 0 {
		counts, _ := Hand34FromTiles(append(append([]Tile{}, h.Tiles...), win))
		if IsAgariChiitoi(counts) || IsAgariKokushi(counts) {
			results := EvaluateYaku(h, win, nil, ctx)
			if r, err := Calculate(h, nil, ctx, results, req); err == nil {
				candidates = append(candidates, r)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoYaku
	}

	// 稳定排序：(总点, 翻, 符) 全同时保留分解枚举顺序
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Han != b.Han {
			return a.Han > b.Han
		}
		return a.Fu > b.Fu
	})
	return candidates[0], nil
}
