package mahjong_test

import (
	"errors"
	"testing"

	"riichi/engine/mahjong"
)

func TestDoraFromIndicator(t *testing.T) {
	cases := []struct {
		indicator mahjong.TileType
		dora      mahjong.TileType
	}{
		{mahjong.Man1, mahjong.Man2},
		{mahjong.Man9, mahjong.Man1}, // 9 绕回 1
		{mahjong.Pin9, mahjong.Pin1},
		{mahjong.So5, mahjong.So6},
		{mahjong.East, mahjong.South},
		{mahjong.North, mahjong.East}, // 北绕回东
		{mahjong.White, mahjong.Green},
		{mahjong.Red, mahjong.White}, // 中绕回白
	}
	for _, c := range cases {
		if got := mahjong.DoraFromIndicator(c.indicator); got != c.dora {
			t.Fatalf("indicator %s expected dora %s, got %s", c.indicator, c.dora, got)
		}
	}
}

func TestParseTiles_RedFive(t *testing.T) {
	tiles, err := mahjong.ParseTiles("4p[5p]6p")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tiles) != 3 || !tiles[1].IsRedFive() {
		t.Fatalf("expected red five in the middle, got %v", tiles)
	}
	if got := mahjong.FormatTiles(tiles); got != "4p[5p]6p" {
		t.Fatalf("round trip expected 4p[5p]6p, got %s", got)
	}

	if _, err := mahjong.ParseTiles("8z"); !errors.Is(err, mahjong.ErrInvalidTileString) {
		t.Fatalf("8z must be rejected, got %v", err)
	}
	if _, err := mahjong.ParseTiles("[1m]"); !errors.Is(err, mahjong.ErrInvalidTileString) {
		t.Fatalf("red marker on non-five must be rejected, got %v", err)
	}
}

func TestCountDora_UraNeedsRiichi(t *testing.T) {
	hand := mustParse(t, "2m2m3m4m")
	indicators := mustParse(t, "1m") // 宝牌 2m
	ura := mustParse(t, "2m")        // 里宝牌 3m

	if got := mahjong.CountDora(hand, indicators, ura, false); got != 2 {
		t.Fatalf("without riichi expected 2 dora, got %d", got)
	}
	if got := mahjong.CountDora(hand, indicators, ura, true); got != 3 {
		t.Fatalf("with riichi expected 2 dora + 1 ura, got %d", got)
	}
}

func TestCountDora_RedFives(t *testing.T) {
	hand := mustParse(t, "[5m][5p]6p")
	if got := mahjong.CountDora(hand, nil, nil, false); got != 2 {
		t.Fatalf("red fives expected 2 dora, got %d", got)
	}
}

func TestDeckManager_RoundSetup(t *testing.T) {
	dm := mahjong.NewDeckManager(true)
	dm.InitRound()

	// 王牌 14 张，其余可摸
	if got := dm.Remaining(); got != mahjong.TileLimit-14 {
		t.Fatalf("remaining expected %d, got %d", mahjong.TileLimit-14, got)
	}

	if _, ok := dm.RevealDoraIndicator(); !ok {
		t.Fatalf("dora reveal failed")
	}
	if _, ok := dm.RevealDoraIndicator(); !ok {
		t.Fatalf("kan dora reveal failed")
	}
	if len(dm.Wang().DoraIndicators) != 2 {
		t.Fatalf("expected 2 dora indicators after kan reveal")
	}

	seen := make(map[mahjong.TileType]int)
	count := 0
	for {
		tile, ok := dm.Draw()
		if !ok {
			break
		}
		seen[tile.Type]++
		count++
	}
	if count != mahjong.TileLimit-14 {
		t.Fatalf("drawable tiles expected %d, got %d", mahjong.TileLimit-14, count)
	}
	for tt, n := range seen {
		if n > 4 {
			t.Fatalf("tile %s appears %d times", tt, n)
		}
	}
}

func TestDeckManager_VisibleAndDora(t *testing.T) {
	dm := mahjong.NewDeckManager(false)
	dm.InitRound()
	if _, ok := dm.RevealDoraIndicator(); !ok {
		t.Fatalf("dora reveal failed")
	}
	drawn := 0
	for i := 0; i < 14; i++ {
		if _, ok := dm.Draw(); ok {
			drawn++
		}
	}

	// 可见计数 = 摸走的牌 + 翻开的指示牌
	var visible [mahjong.TileKinds]uint8
	dm.Visible34(&visible)
	sum := 0
	for _, v := range visible {
		sum += int(v)
	}
	if sum != drawn+1 {
		t.Fatalf("visible tiles expected %d, got %d", drawn+1, sum)
	}

	// 每种牌各一张的全种集合：宝牌数恰等于指示牌数
	all := make([]mahjong.Tile, 0, mahjong.TileKinds)
	for i := 0; i < mahjong.TileKinds; i++ {
		all = append(all, mahjong.Tile{Type: mahjong.TileType(i), ID: 1})
	}
	if got := dm.CountDora(all, false); got != 1 {
		t.Fatalf("dora count expected 1, got %d", got)
	}
}

func TestSituation_SeatWindAndRequest(t *testing.T) {
	sit := &mahjong.Situation{
		DealerIndex:  2,
		Honba:        1,
		RoundWind:    mahjong.WindSouth,
		RoundNumber:  3,
		RiichiSticks: 2,
	}
	if sit.SeatWind(2) != mahjong.WindEast {
		t.Fatalf("dealer seat wind expected east, got %v", sit.SeatWind(2))
	}
	if sit.SeatWind(3) != mahjong.WindSouth || sit.SeatWind(1) != mahjong.WindNorth {
		t.Fatalf("seat winds wrong: %v %v", sit.SeatWind(3), sit.SeatWind(1))
	}

	req := sit.NewSettleRequest(0)
	if req.WinnerSeat != 0 || req.DiscarderSeat != -1 || req.PaoSeat != -1 {
		t.Fatalf("request skeleton wrong: %+v", req)
	}
	if req.Honba != 1 || req.RiichiSticks != 2 {
		t.Fatalf("situation sticks not carried: %+v", req)
	}
}
