package mahjong_test

import (
	"errors"
	"testing"

	"riichi/engine/mahjong"
)

func TestHand_DrawDiscard(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m2m3m4p5p6p7s8s9s1z1z2z2z"))

	h.Draw(tt(mahjong.Red))
	if len(h.Tiles) != 14 {
		t.Fatalf("expected 14 tiles after draw, got %d", len(h.Tiles))
	}

	if err := h.Discard(tt(mahjong.Red)); err != nil {
		t.Fatalf("discard drawn tile: %v", err)
	}
	if len(h.Tiles) != 13 {
		t.Fatalf("expected 13 tiles after discard, got %d", len(h.Tiles))
	}
	if !h.HasDiscarded(mahjong.Red) {
		t.Fatalf("discard river should record 7z")
	}

	err := h.Discard(tt(mahjong.Green))
	if !errors.Is(err, mahjong.ErrTileNotInHand) {
		t.Fatalf("expected ErrTileNotInHand, got %v", err)
	}
}

func TestHand_Pon(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m1m2m3m4p5p6p7s8s9s1z1z2z"))

	claimed := mahjong.Tile{Type: mahjong.Man1, ID: 3}
	if !h.CanPon(claimed) {
		t.Fatalf("expected CanPon true")
	}
	meld, err := h.Pon(claimed, 2)
	if err != nil {
		t.Fatalf("pon: %v", err)
	}
	if meld.Kind != mahjong.MeldTriplet || meld.Concealed {
		t.Fatalf("pon meld wrong: %+v", meld)
	}
	if len(h.Tiles) != 11 || len(h.Melds) != 1 {
		t.Fatalf("hand after pon: tiles=%d melds=%d", len(h.Tiles), len(h.Melds))
	}
	if h.IsConcealed() {
		t.Fatalf("hand with pon is open")
	}
}

func TestHand_ChiOptions(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m3m5m6m4p5p6p7s8s9s1z1z2z"))

	opts := h.ChiOptions(tt(mahjong.Man4))
	// 23m 吃 4、 56m 吃 4、 35m 嵌 4
	if len(opts) != 3 {
		t.Fatalf("expected 3 chi options, got %d: %v", len(opts), opts)
	}

	meld, err := h.Chi(tt(mahjong.Man4), opts[0], 3)
	if err != nil {
		t.Fatalf("chi: %v", err)
	}
	if meld.Kind != mahjong.MeldSequence {
		t.Fatalf("chi meld wrong: %+v", meld)
	}

	if h.CanChi(tt(mahjong.East)) {
		t.Fatalf("honors can never be claimed for chi")
	}
}

func TestHand_Kan(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m1m1m1m4p5p6p7s8s9s1z1z2z"))

	ankans := h.AnkanOptions()
	if len(ankans) != 1 || ankans[0] != mahjong.Man1 {
		t.Fatalf("ankan options expected [1m], got %v", ankans)
	}
	meld, err := h.Ankan(mahjong.Man1)
	if err != nil {
		t.Fatalf("ankan: %v", err)
	}
	if meld.Kind != mahjong.MeldQuad || !meld.Concealed {
		t.Fatalf("ankan meld wrong: %+v", meld)
	}
	// 暗杠不破门清
	if !h.IsConcealed() {
		t.Fatalf("ankan must keep the hand concealed")
	}
}

func TestHand_Kakan(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "1m1m2m3m4p5p6p7s8s9s1z1z2z"))
	if _, err := h.Pon(mahjong.Tile{Type: mahjong.Man1, ID: 3}, 2); err != nil {
		t.Fatalf("pon: %v", err)
	}

	h.Draw(mahjong.Tile{Type: mahjong.Man1, ID: 4})
	opts := h.KakanOptions()
	if len(opts) != 1 || opts[0] != mahjong.Man1 {
		t.Fatalf("kakan options expected [1m], got %v", opts)
	}
	meld, err := h.Kakan(mahjong.Man1)
	if err != nil {
		t.Fatalf("kakan: %v", err)
	}
	if meld.Kind != mahjong.MeldQuad || meld.Concealed {
		t.Fatalf("kakan meld wrong: %+v", meld)
	}
	if len(h.Melds) != 1 {
		t.Fatalf("kakan should upgrade the pon in place, melds=%d", len(h.Melds))
	}
}

func TestHand_DeclareRiichi(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p9s9s"))
	if err := h.DeclareRiichi(); err != nil {
		t.Fatalf("tenpai concealed hand should riichi: %v", err)
	}
	if !h.Riichi {
		t.Fatalf("riichi flag not set")
	}

	noten := mahjong.NewHand(mustParse(t, "1m3m5m7m9m2p4p6p8p1s3s5s7s"))
	if err := noten.DeclareRiichi(); !errors.Is(err, mahjong.ErrCannotRiichi) {
		t.Fatalf("noten hand must not riichi, got %v", err)
	}

	open := mahjong.NewHand(mustParse(t, "1m1m2m3m4p5p6p7s8s9s1z1z2z"))
	if _, err := open.Pon(mahjong.Tile{Type: mahjong.Man1, ID: 3}, 1); err != nil {
		t.Fatalf("pon: %v", err)
	}
	if err := open.DeclareRiichi(); !errors.Is(err, mahjong.ErrCannotRiichi) {
		t.Fatalf("open hand must not riichi, got %v", err)
	}
}

func TestHand_WinningHand(t *testing.T) {
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p9s9s"))

	if !h.IsWinningHand(tt(mahjong.Pin7)) {
		t.Fatalf("7p should complete the hand")
	}
	if h.IsWinningHand(tt(mahjong.East)) {
		t.Fatalf("1z does not complete the hand")
	}

	combos := h.WinningCombinations(tt(mahjong.Pin7))
	if len(combos) == 0 {
		t.Fatalf("expected at least one decomposition")
	}
	for _, d := range combos {
		if _, ok := d.Pair(); !ok {
			t.Fatalf("decomposition missing pair: %v", d)
		}
	}
}

func TestHand_WrongSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on wrong hand size")
		}
	}()
	h := mahjong.NewHand(mustParse(t, "1m2m3m"))
	h.WaitingTiles()
}

func TestHand_DiscardCandidates(t *testing.T) {
	// 摸进 7z 后只有打 3s 或打 7z 还保持听牌
	h := mahjong.NewHand(mustParse(t, "2m3m4m5m6m7m2p3p4p5p6p7p3s"))
	cands := h.DiscardCandidates(tt(mahjong.Red), nil)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %v", cands)
	}
	// 枚举按牌种升序：先 3s 后 7z
	if cands[0].DiscardType != mahjong.So3 || cands[1].DiscardType != mahjong.Red {
		t.Fatalf("candidate order wrong: %v", cands)
	}
	if len(cands[0].Waits) != 1 || cands[0].Waits[0] != mahjong.Red {
		t.Fatalf("discarding 3s should wait on 7z: %v", cands[0])
	}
	if cands[1].Ukeire != 3 {
		t.Fatalf("3s ukeire expected 3, got %d", cands[1].Ukeire)
	}

	// 场上已亮出两张 3s 时进张相应减少
	var visible [mahjong.TileKinds]uint8
	visible[int(mahjong.So3)] = 2
	cands = h.DiscardCandidates(tt(mahjong.Red), &visible)
	if cands[1].Ukeire != 1 {
		t.Fatalf("3s ukeire with visible tiles expected 1, got %d", cands[1].Ukeire)
	}
}
