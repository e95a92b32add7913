package mahjong

func one(r YakuResult) []YakuResult { return []YakuResult{r} }

// sequenceGroups 分解中的顺子
func sequenceGroups(d Decomposition) []Group {
	out := make([]Group, 0, 4)
	for _, g := range d {
		if g.Kind == MeldSequence {
			out = append(out, g)
		}
	}
	return out
}

// tripletGroups 分解中的刻子与杠子
func tripletGroups(d Decomposition) []Group {
	out := make([]Group, 0, 4)
	for _, g := range d {
		if g.Kind == MeldTriplet || g.Kind == MeldQuad {
			out = append(out, g)
		}
	}
	return out
}

func kanCount(d Decomposition) int {
	n := 0
	for _, g := range d {
		if g.Kind == MeldQuad {
			n++
		}
	}
	return n
}

// numberSuits 分解覆盖的数牌花色集合，bool 表示是否含字牌
func numberSuits(d Decomposition) (map[int]bool, bool) {
	suits := make(map[int]bool, 3)
	hasHonor := false
	for _, g := range d {
		for _, tt := range g.Tiles() {
			if tt.IsHonor() {
				hasHonor = true
			} else {
				suits[tt.Suit()] = true
			}
		}
	}
	return suits, hasHonor
}

func checkRiichi(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.Riichi {
		return nil
	}
	return one(YakuResult{ID: YakuRiichi, Han: 1})
}

// checkIppatsu 一发：立直后一巡内和牌。未跟踪巡数时不判定
func checkIppatsu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.Riichi || ctx.TurnsAfterRiichi != 0 {
		return nil
	}
	return one(YakuResult{ID: YakuIppatsu, Han: 1})
}

func checkMenzenTsumo(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !ctx.IsTsumo || !h.IsConcealed() {
		return nil
	}
	return one(YakuResult{ID: YakuTsumo, Han: 1})
}

// checkHaiteiHoutei 海底捞月 / 河底捞鱼
func checkHaiteiHoutei(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !ctx.IsLastTile {
		return nil
	}
	if ctx.IsTsumo {
		return one(YakuResult{ID: YakuHaitei, Han: 1})
	}
	return one(YakuResult{ID: YakuHoutei, Han: 1})
}

func checkRinshan(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !ctx.IsRinshan {
		return nil
	}
	return one(YakuResult{ID: YakuRinshan, Han: 1})
}

// checkTanyao 断幺九：无幺九牌
func checkTanyao(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	for _, g := range d {
		for _, tt := range g.Tiles() {
			if tt.IsYaochu() {
				return nil
			}
		}
	}
	return one(YakuResult{ID: YakuTanyao, Han: 1})
}

// checkPinfu 平和：门清、4顺子、非役牌雀头，按规则还要求两面听
func checkPinfu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.IsConcealed() {
		return nil
	}
	if len(sequenceGroups(d)) != 4 {
		return nil
	}
	pair, ok := d.Pair()
	if !ok {
		return nil
	}
	if pair.Base.IsDragon() {
		return nil
	}
	if pair.Base == ctx.RoundWind.WindTile() || pair.Base == ctx.SeatWind.WindTile() {
		return nil
	}
	if ctx.ruleset().PinfuRequireRyanmen && ClassifyWait(d, ctx.WinTile.Type) != WaitRyanmen {
		return nil
	}
	return one(YakuResult{ID: YakuPinfu, Han: 1})
}

// checkIipeikou 一杯口：门清下两组同种顺子
func checkIipeikou(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.IsConcealed() {
		return nil
	}
	seqs := sequenceGroups(d)
	for i := 0; i < len(seqs); i++ {
		for j := i + 1; j < len(seqs); j++ {
			if seqs[i].Base == seqs[j].Base {
				return one(YakuResult{ID: YakuIppeiko, Han: 1})
			}
		}
	}
	return nil
}

// checkRyanpeikou 二杯口：两组不同的同种顺子各出现两次
func checkRyanpeikou(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.IsConcealed() {
		return nil
	}
	seqs := sequenceGroups(d)
	if len(seqs) != 4 {
		return nil
	}
	counts := make(map[TileType]int, 4)
	for _, g := range seqs {
		counts[g.Base]++
	}
	paired := 0
	for _, c := range counts {
		if c != 2 {
			return nil
		}
		paired++
	}
	if paired != 2 {
		return nil
	}
	return one(YakuResult{ID: YakuRyanpeiko, Han: 3})
}

func checkToitoi(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if len(tripletGroups(d)) != 4 {
		return nil
	}
	return one(YakuResult{ID: YakuToitoi, Han: 2})
}

func checkSankantsu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if kanCount(d) != 3 {
		return nil
	}
	return one(YakuResult{ID: YakuSankantsu, Han: 2})
}

// checkYakuhai 役牌刻子，三元牌、场风、自风各计一个，连风各算一次
func checkYakuhai(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	var results []YakuResult
	for _, g := range tripletGroups(d) {
		switch g.Base {
		case White:
			results = append(results, YakuResult{ID: YakuHaku, Han: 1})
		case Green:
			results = append(results, YakuResult{ID: YakuHatsu, Han: 1})
		case Red:
			results = append(results, YakuResult{ID: YakuChun, Han: 1})
		}
		if g.Base.IsWind() {
			if g.Base == ctx.RoundWind.WindTile() {
				results = append(results, YakuResult{ID: YakuRoundWind, Han: 1})
			}
			if g.Base == ctx.SeatWind.WindTile() {
				results = append(results, YakuResult{ID: YakuSeatWind, Han: 1})
			}
		}
	}
	return results
}

// checkSanshoku 三色同顺
func checkSanshoku(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	var bySuit [3][10]bool
	for _, g := range sequenceGroups(d) {
		bySuit[g.Base.Suit()][g.Base.Number()] = true
	}
	for n := 1; n <= 7; n++ {
		if bySuit[0][n] && bySuit[1][n] && bySuit[2][n] {
			return one(YakuResult{ID: YakuSanshoku, Han: 2})
		}
	}
	return nil
}

// checkIttsu 一气通贯：同花色 123、456、789
func checkIttsu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	var bySuit [3][10]bool
	for _, g := range sequenceGroups(d) {
		bySuit[g.Base.Suit()][g.Base.Number()] = true
	}
	for s := 0; s < 3; s++ {
		if bySuit[s][1] && bySuit[s][4] && bySuit[s][7] {
			return one(YakuResult{ID: YakuIttsu, Han: 2})
		}
	}
	return nil
}

// checkSananko 三暗刻：三组暗刻（含暗杠）
func checkSananko(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	concealed := 0
	for _, g := range tripletGroups(d) {
		if g.Concealed {
			concealed++
		}
	}
	if concealed < 3 {
		return nil
	}
	return one(YakuResult{ID: YakuSananko, Han: 2})
}

func checkChinitsu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	suits, hasHonor := numberSuits(d)
	if hasHonor || len(suits) != 1 {
		return nil
	}
	return one(YakuResult{ID: YakuChinitsu, Han: 6})
}

func checkHonitsu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	suits, hasHonor := numberSuits(d)
	if !hasHonor || len(suits) != 1 {
		return nil
	}
	return one(YakuResult{ID: YakuHonitsu, Han: 3})
}

// checkSanshokuDoukou 三色同刻
func checkSanshokuDoukou(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	var bySuit [3][10]bool
	for _, g := range tripletGroups(d) {
		if s := g.Base.Suit(); s >= 0 {
			bySuit[s][g.Base.Number()] = true
		}
	}
	for n := 1; n <= 9; n++ {
		if bySuit[0][n] && bySuit[1][n] && bySuit[2][n] {
			return one(YakuResult{ID: YakuSanshokuDoukou, Han: 2})
		}
	}
	return nil
}

// checkShousangen 小三元：两组三元牌刻子 + 三元牌雀头
func checkShousangen(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	dragons := 0
	for _, g := range tripletGroups(d) {
		if g.Base.IsDragon() {
			dragons++
		}
	}
	pair, ok := d.Pair()
	if dragons == 2 && ok && pair.Base.IsDragon() {
		return one(YakuResult{ID: YakuShousangen, Han: 2})
	}
	return nil
}

// checkHonroto 混老头：全是幺九牌，且数牌与字牌都有
func checkHonroto(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	hasHonor := false
	hasTerminal := false
	for _, g := range d {
		for _, tt := range g.Tiles() {
			if !tt.IsYaochu() {
				return nil
			}
			if tt.IsHonor() {
				hasHonor = true
			} else {
				hasTerminal = true
			}
		}
	}
	if !hasHonor || !hasTerminal {
		return nil
	}
	return one(YakuResult{ID: YakuHonroto, Han: 2})
}

// checkJunchan 纯全带幺九：四组含幺九的顺子加幺九雀头，无字牌
func checkJunchan(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	sequences := 0
	for _, g := range d {
		if g.Base.IsHonor() {
			return nil
		}
		switch g.Kind {
		case MeldSequence:
			if n := g.Base.Number(); n != 1 && n != 7 {
				return nil
			}
			sequences++
		case MeldTriplet, MeldQuad:
			return nil
		case MeldPair:
			if !g.Base.IsTerminal() {
				return nil
			}
		}
	}
	if sequences != 4 {
		return nil
	}
	rules := ctx.ruleset()
	han := rules.JunchanClosedHan
	if !h.IsConcealed() {
		han = rules.JunchanOpenHan
	}
	return one(YakuResult{ID: YakuJunchan, Han: han})
}

// checkChanta 混全带幺九：每组都带幺九牌且含字牌
func checkChanta(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	rules := ctx.ruleset()
	if !rules.ChantaEnabled {
		return nil
	}
	hasHonor := false
	for _, g := range d {
		if g.Base.IsHonor() {
			hasHonor = true
			continue
		}
		if g.Kind == MeldSequence {
			if n := g.Base.Number(); n != 1 && n != 7 {
				return nil
			}
		} else if !g.Base.IsTerminal() {
			return nil
		}
	}
	if !hasHonor {
		return nil
	}
	han := rules.ChantaClosedHan
	if !h.IsConcealed() {
		han = rules.ChantaOpenHan
	}
	return one(YakuResult{ID: YakuChanta, Han: han})
}

// ---------------- 役满 ----------------

func checkDaisangen(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	dragons := 0
	for _, g := range tripletGroups(d) {
		if g.Base.IsDragon() {
			dragons++
		}
	}
	if dragons != 3 {
		return nil
	}
	return one(YakuResult{ID: YakuDaisangen, Han: 13, Yakuman: 1})
}

func checkSuukantsu(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if kanCount(d) != 4 {
		return nil
	}
	return one(YakuResult{ID: YakuSuukantsu, Han: 13, Yakuman: 1})
}

// checkSuuankou 四暗刻，单骑听按规则翻双倍
func checkSuuankou(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.IsConcealed() {
		return nil
	}
	concealed := 0
	for _, g := range tripletGroups(d) {
		if g.Concealed {
			concealed++
		}
	}
	if concealed != 4 {
		return nil
	}
	pair, ok := d.Pair()
	if ok && pair.Base == ctx.WinTile.Type && ctx.ruleset().SuuankouTankiDouble {
		return one(YakuResult{ID: YakuSuuankouTanki, Han: 26, Yakuman: 2})
	}
	return one(YakuResult{ID: YakuSuuankou, Han: 13, Yakuman: 1})
}

// checkShousushi 小四喜
func checkShousushi(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	winds := 0
	for _, g := range tripletGroups(d) {
		if g.Base.IsWind() {
			winds++
		}
	}
	pair, ok := d.Pair()
	if winds == 3 && ok && pair.Base.IsWind() {
		return one(YakuResult{ID: YakuShousushi, Han: 13, Yakuman: 1})
	}
	return nil
}

// checkDaisushi 大四喜
func checkDaisushi(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	winds := 0
	for _, g := range tripletGroups(d) {
		if g.Base.IsWind() {
			winds++
		}
	}
	if winds != 4 {
		return nil
	}
	return one(YakuResult{ID: YakuDaisushi, Han: 13, Yakuman: 1})
}

// checkChinroto 清老头：全部数牌幺九
func checkChinroto(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	for _, g := range d {
		for _, tt := range g.Tiles() {
			if !tt.IsTerminal() {
				return nil
			}
		}
	}
	return one(YakuResult{ID: YakuChinroto, Han: 13, Yakuman: 1})
}

// checkTsuuiisou 字一色
func checkTsuuiisou(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	for _, g := range d {
		if !g.Base.IsHonor() {
			return nil
		}
	}
	return one(YakuResult{ID: YakuTsuuiisou, Han: 13, Yakuman: 1})
}

var greenTiles = map[TileType]bool{
	So2: true, So3: true, So4: true, So6: true, So8: true, Green: true,
}

// checkRyuuiisou 绿一色：23468索与发
func checkRyuuiisou(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	for _, g := range d {
		for _, tt := range g.Tiles() {
			if !greenTiles[tt] {
				return nil
			}
		}
	}
	return one(YakuResult{ID: YakuRyuuiisou, Han: 13, Yakuman: 1})
}

// checkChuuren 九莲宝灯。去掉和牌张后恰好是 1112345678999 即纯正九面听
func checkChuuren(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	if !h.IsConcealed() || len(h.Melds) != 0 {
		return nil
	}
	counts := d.TypeCounts()

	suit := -1
	var byNumber [10]int
	total := 0
	for i := 0; i < TileKinds; i++ {
		if counts[i] == 0 {
			continue
		}
		tt := TileType(i)
		if tt.IsHonor() {
			return nil
		}
		if suit == -1 {
			suit = tt.Suit()
		} else if suit != tt.Suit() {
			return nil
		}
		byNumber[tt.Number()] += counts[i]
		total += counts[i]
	}
	if suit == -1 || total != 14 {
		return nil
	}

	base := [10]int{0, 3, 1, 1, 1, 1, 1, 1, 1, 3}
	for n := 1; n <= 9; n++ {
		if byNumber[n] < base[n] {
			return nil
		}
	}

	if ctx.WinTile.Type.Suit() == suit {
		work := byNumber
		work[ctx.WinTile.Type.Number()]--
		if work == base {
			if ctx.ruleset().ChuurenPureDouble {
				return one(YakuResult{ID: YakuJunseiChuuren, Han: 26, Yakuman: 2})
			}
			return one(YakuResult{ID: YakuJunseiChuuren, Han: 13, Yakuman: 1})
		}
	}
	return one(YakuResult{ID: YakuChuuren, Han: 13, Yakuman: 1})
}

// normalYakuRegistry 普通役判定顺序，与累加求和无关但保持确定
var normalYakuRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuRiichi, check: checkRiichi},
	yakuCheckerFunc{id: YakuIppatsu, check: checkIppatsu},
	yakuCheckerFunc{id: YakuTsumo, check: checkMenzenTsumo},
	yakuCheckerFunc{id: YakuHaitei, check: checkHaiteiHoutei},
	yakuCheckerFunc{id: YakuRinshan, check: checkRinshan},
	yakuCheckerFunc{id: YakuTanyao, check: checkTanyao},
	yakuCheckerFunc{id: YakuPinfu, check: checkPinfu},
	yakuCheckerFunc{id: YakuIppeiko, check: checkIipeikou},
	yakuCheckerFunc{id: YakuToitoi, check: checkToitoi},
	yakuCheckerFunc{id: YakuSankantsu, check: checkSankantsu},
	yakuCheckerFunc{id: YakuHaku, check: checkYakuhai},
	yakuCheckerFunc{id: YakuSanshoku, check: checkSanshoku},
	yakuCheckerFunc{id: YakuIttsu, check: checkIttsu},
	yakuCheckerFunc{id: YakuSananko, check: checkSananko},
	yakuCheckerFunc{id: YakuChinitsu, check: checkChinitsu},
	yakuCheckerFunc{id: YakuHonitsu, check: checkHonitsu},
	yakuCheckerFunc{id: YakuSanshokuDoukou, check: checkSanshokuDoukou},
	yakuCheckerFunc{id: YakuShousangen, check: checkShousangen},
	yakuCheckerFunc{id: YakuHonroto, check: checkHonroto},
	yakuCheckerFunc{id: YakuJunchan, check: checkJunchan},
	yakuCheckerFunc{id: YakuChanta, check: checkChanta},
	yakuCheckerFunc{id: YakuRyanpeiko, check: checkRyanpeikou},
}

// yakumanYakuRegistry 役满判定，命中任意一个就覆盖普通役
var yakumanYakuRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuDaisangen, check: checkDaisangen},
	yakuCheckerFunc{id: YakuSuukantsu, check: checkSuukantsu},
	yakuCheckerFunc{id: YakuSuuankou, check: checkSuuankou},
	yakuCheckerFunc{id: YakuShousushi, check: checkShousushi},
	yakuCheckerFunc{id: YakuDaisushi, check: checkDaisushi},
	yakuCheckerFunc{id: YakuChinroto, check: checkChinroto},
	yakuCheckerFunc{id: YakuTsuuiisou, check: checkTsuuiisou},
	yakuCheckerFunc{id: YakuRyuuiisou, check: checkRyuuiisou},
	yakuCheckerFunc{id: YakuChuuren, check: checkChuuren},
}
