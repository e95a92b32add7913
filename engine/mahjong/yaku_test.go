package mahjong_test

import (
	"testing"

	"riichi/engine/mahjong"
)

// ronCtx 南家荣和的默认上下文
func ronCtx(win mahjong.Tile) *mahjong.WinContext {
	return &mahjong.WinContext{
		WinTile:          win,
		TurnsAfterRiichi: -1,
		RoundWind:        mahjong.WindEast,
		SeatWind:         mahjong.WindSouth,
	}
}

func tsumoCtx(win mahjong.Tile) *mahjong.WinContext {
	ctx := ronCtx(win)
	ctx.IsTsumo = true
	return ctx
}

func yakuNames(results []mahjong.YakuResult) map[mahjong.Yaku]int {
	out := make(map[mahjong.Yaku]int, len(results))
	for _, r := range results {
		out[r.ID] = r.Han
	}
	return out
}

func evalFirst(t *testing.T, h *mahjong.Hand, win mahjong.Tile, ctx *mahjong.WinContext) []mahjong.YakuResult {
	t.Helper()
	combos := h.WinningCombinations(win)
	if len(combos) == 0 {
		t.Fatalf("no decomposition for hand %v + %s", h.Tiles, win)
	}
	return mahjong.EvaluateYaku(h, win, combos[0], ctx)
}

func TestYaku_PinfuTanyaoTsumo(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p8s8s"))
	win := tt(mahjong.Pin7)

	got := yakuNames(evalFirst(t, h, win, tsumoCtx(win)))
	if got[mahjong.YakuPinfu] != 1 || got[mahjong.YakuTanyao] != 1 || got[mahjong.YakuTsumo] != 1 {
		t.Fatalf("expected pinfu+tanyao+tsumo, got %v", got)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected extra yaku: %v", got)
	}
}

func TestYaku_PinfuRequiresRyanmen(t *testing.T) {
	// 单骑听，平和不成立
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p7p3s"))
	win := tt(mahjong.So3)

	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if _, ok := got[mahjong.YakuPinfu]; ok {
		t.Fatalf("tanki wait must not count as pinfu: %v", got)
	}

	// 规则放开两面限制后成立
	ctx := ronCtx(win)
	rules := mahjong.StandardRuleset()
	rules.PinfuRequireRyanmen = false
	ctx.Rules = rules
	got = yakuNames(evalFirst(t, h, win, ctx))
	if got[mahjong.YakuPinfu] != 1 {
		t.Fatalf("pinfu expected with relaxed wait rule: %v", got)
	}
}

func TestYaku_ValuePairBlocksPinfu(t *testing.T) {
	// 雀头是场风东
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p1z1z"))
	win := tt(mahjong.Pin7)

	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if _, ok := got[mahjong.YakuPinfu]; ok {
		t.Fatalf("value pair must block pinfu: %v", got)
	}
}

func TestYaku_YakuhaiAndDoubleWind(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m3m4m6m7m8m5s6s7p7p"))
	white, err := mahjong.NewMeld(mahjong.MeldTriplet,
		tiles(mahjong.White, mahjong.White, mahjong.White), false, 2)
	if err != nil {
		t.Fatalf("meld: %v", err)
	}
	h.Melds = append(h.Melds, white)
	win := tt(mahjong.So7)

	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if got[mahjong.YakuHaku] != 1 {
		t.Fatalf("expected haku, got %v", got)
	}

	// 东场东家的东刻子计场风 + 自风两个
	dh := mahjong.NewHand(mustParse(t, "2m3m4m6m7m8m5s6s7p7p"))
	east, err := mahjong.NewMeld(mahjong.MeldTriplet,
		tiles(mahjong.East, mahjong.East, mahjong.East), false, 3)
	if err != nil {
		t.Fatalf("meld: %v", err)
	}
	dh.Melds = append(dh.Melds, east)
	ctx := ronCtx(win)
	ctx.SeatWind = mahjong.WindEast
	ctx.IsDealer = true
	got = yakuNames(evalFirst(t, dh, win, ctx))
	if got[mahjong.YakuRoundWind] != 1 || got[mahjong.YakuSeatWind] != 1 {
		t.Fatalf("double east expected round+seat wind, got %v", got)
	}
}

func TestYaku_RyanpeikouFilters(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m2m3m3m4m6p6p7p7p8p8p5s5s"))
	win := tt(mahjong.Man4)

	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if got[mahjong.YakuRyanpeiko] != 3 {
		t.Fatalf("expected ryanpeikou 3 han, got %v", got)
	}
	if _, ok := got[mahjong.YakuIppeiko]; ok {
		t.Fatalf("iipeikou must yield to ryanpeikou: %v", got)
	}
	if _, ok := got[mahjong.YakuPinfu]; ok {
		t.Fatalf("pinfu conflicts with ryanpeikou: %v", got)
	}
	if got[mahjong.YakuTanyao] != 1 {
		t.Fatalf("tanyao expected, got %v", got)
	}
}

func TestYaku_ToitoiSanankou(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2p2p2p3s3s3s9s9s9s5z"))
	pon, err := mahjong.NewMeld(mahjong.MeldTriplet,
		tiles(mahjong.Man1, mahjong.Man1, mahjong.Man1), false, 2)
	if err != nil {
		t.Fatalf("meld: %v", err)
	}
	h.Melds = append(h.Melds, pon)
	win := tt(mahjong.White)

	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if got[mahjong.YakuToitoi] != 2 || got[mahjong.YakuSananko] != 2 {
		t.Fatalf("expected toitoi+sanankou, got %v", got)
	}
}

func TestYaku_ChinitsuNotHonitsu(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m1m1m2m3m4m5m6m7m8m8m8m9m"))
	win := tt(mahjong.Man9)

	combos := h.WinningCombinations(win)
	best := 0
	for _, d := range combos {
		got := yakuNames(mahjong.EvaluateYaku(h, win, d, ronCtx(win)))
		if _, ok := got[mahjong.YakuHonitsu]; ok {
			t.Fatalf("honitsu must not fire on a pure flush: %v", got)
		}
		if han := got[mahjong.YakuChinitsu]; han > best {
			best = han
		}
	}
	if best != 6 {
		t.Fatalf("chinitsu expected 6 han, got %d", best)
	}
}

func TestYaku_IttsuAndSanshoku(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m2m3m4m5m6m7m8m9m2p3p4p5z"))
	win := tt(mahjong.White)
	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if got[mahjong.YakuIttsu] != 2 {
		t.Fatalf("ittsu expected, got %v", got)
	}

	s := mahjong.NewHand(mustParse(t, "2m3m4m2p3p4p2s3s4s6s7s1z1z"))
	win = tt(mahjong.So8)
	got = yakuNames(evalFirst(t, s, win, ronCtx(win)))
	if got[mahjong.YakuSanshoku] != 2 {
		t.Fatalf("sanshoku expected, got %v", got)
	}
}

func TestYaku_ChantaAndJunchan(t *testing.T) {
	// 混全：带字牌
	h := mahjong.NewHand(mustParse(t, "1m2m3m7p8p9p1s2s3s1z1z1z9m"))
	win := tt(mahjong.Man9)
	got := yakuNames(evalFirst(t, h, win, ronCtx(win)))
	if got[mahjong.YakuChanta] != 2 {
		t.Fatalf("closed chanta expected 2 han, got %v", got)
	}

	// 纯全：四顺子带幺九、幺九雀头
	j := mahjong.NewHand(mustParse(t, "1m2m3m7p8p9p1s2s3s7s8s9m9m"))
	win = tt(mahjong.So9)
	got = yakuNames(evalFirst(t, j, win, ronCtx(win)))
	if got[mahjong.YakuJunchan] != 3 {
		t.Fatalf("closed junchan expected 3 han, got %v", got)
	}
	if _, ok := got[mahjong.YakuChanta]; ok {
		t.Fatalf("chanta must yield to junchan: %v", got)
	}
}

func TestYaku_SuuankouTanki(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m2m2m2p2p2p3s3s3s9s9s9s5z"))
	win := tt(mahjong.White)

	results := evalFirst(t, h, win, tsumoCtx(win))
	got := yakuNames(results)
	if _, ok := got[mahjong.YakuSuuankouTanki]; !ok {
		t.Fatalf("suuankou tanki expected, got %v", got)
	}
	for _, r := range results {
		if r.ID == mahjong.YakuSuuankouTanki && r.Yakuman != 2 {
			t.Fatalf("tanki wait should double the yakuman, got %+v", r)
		}
	}
	if _, ok := got[mahjong.YakuToitoi]; ok {
		t.Fatalf("yakuman must replace normal yaku: %v", got)
	}
}

func TestYaku_KokushiThirteenWait(t *testing.T) {
	h := mahjong.NewHand(tiles(mahjong.KokushiTileTypes[:]...))
	win := tt(mahjong.East)

	results := mahjong.EvaluateYaku(h, win, nil, ronCtx(win))
	got := yakuNames(results)
	if _, ok := got[mahjong.YakuKokushi13]; !ok {
		t.Fatalf("thirteen-sided kokushi expected, got %v", got)
	}
}

func TestYaku_ChiitoiIrregular(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m1m2m2m3m3m7p7p9p9p1s1s4z"))
	win := tt(mahjong.North)

	got := yakuNames(mahjong.EvaluateYaku(h, win, nil, ronCtx(win)))
	if got[mahjong.YakuChiitoi] != 2 {
		t.Fatalf("chiitoi expected 2 han, got %v", got)
	}
}

func TestYaku_TenhouAndRenhou(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p8s8s"))
	win := tt(mahjong.Pin7)

	ctx := tsumoCtx(win)
	ctx.IsFirstTurn = true
	ctx.IsDealer = true
	results := mahjong.EvaluateYaku(h, win, nil, ctx)
	if len(results) != 1 || results[0].ID != mahjong.YakuTenhou {
		t.Fatalf("dealer first-draw win expected tenhou alone, got %v", results)
	}

	ctx = ronCtx(win)
	ctx.IsFirstTurn = true
	results = mahjong.EvaluateYaku(h, win, nil, ctx)
	if len(results) != 1 || results[0].ID != mahjong.YakuRenhou || results[0].Han != 2 {
		t.Fatalf("renhou at default policy expected 2 han, got %v", results)
	}
}

func TestYaku_RiichiSurvivesYakuman(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m2m2m2p2p2p3s3s3s9s9s9s5z"))
	if err := h.DeclareRiichi(); err != nil {
		t.Fatalf("riichi: %v", err)
	}
	win := tt(mahjong.White)

	got := yakuNames(evalFirst(t, h, win, tsumoCtx(win)))
	if _, ok := got[mahjong.YakuRiichi]; !ok {
		t.Fatalf("riichi must survive yakuman override: %v", got)
	}
}
