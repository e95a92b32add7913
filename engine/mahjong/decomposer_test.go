package mahjong_test

import (
	"testing"

	"riichi/engine/mahjong"
)

func TestDecompose_TripletsVersusSequences(t *testing.T) {
	h14, _ := mahjong.Hand34FromTiles(mustParse(t,
		"1m1m1m2m2m2m3m3m3m7p8p9p5z5z"))
	out := mahjong.Decompose(h14, nil)
	// 111/222/333 或 123×3，两种拆法
	if len(out) != 2 {
		t.Fatalf("expected 2 decompositions, got %d: %v", len(out), out)
	}
	for _, d := range out {
		pair, ok := d.Pair()
		if !ok || pair.Base != mahjong.White {
			t.Fatalf("pair expected 5z, got %v", d)
		}
		if len(d) != 5 {
			t.Fatalf("decomposition expected 5 groups, got %v", d)
		}
	}
}

func TestDecompose_DeterministicOrder(t *testing.T) {
	h14, _ := mahjong.Hand34FromTiles(mustParse(t,
		"2m3m4m5m6m7m2p3p4p5p6p7p3z3z"))
	first := mahjong.Decompose(h14, nil)
	second := mahjong.Decompose(h14, nil)
	if len(first) != len(second) {
		t.Fatalf("unstable decomposition count")
	}
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("unstable decomposition order at %d/%d", i, j)
			}
		}
	}
}

func TestDecompose_FixedMeldsAppended(t *testing.T) {
	meld, err := mahjong.NewMeld(mahjong.MeldTriplet,
		tiles(mahjong.East, mahjong.East, mahjong.East), false, 1)
	if err != nil {
		t.Fatalf("meld: %v", err)
	}

	h11, _ := mahjong.Hand34FromTiles(mustParse(t,
		"2m3m4m5m6m7m2p3p4p5s5s"))
	out := mahjong.Decompose(h11, []mahjong.Meld{meld})
	if len(out) == 0 {
		t.Fatalf("expected decomposition with fixed meld")
	}
	d := out[0]
	last := d[len(d)-1]
	if last.Kind != mahjong.MeldTriplet || last.Base != mahjong.East || last.Concealed {
		t.Fatalf("fixed meld group wrong: %+v", last)
	}
}

func TestDecompose_NoPairNoResult(t *testing.T) {
	h14, _ := mahjong.Hand34FromTiles(mustParse(t,
		"1m2m3m4m5m6m7m8m9m1p2p3p4p5p"))
	if out := mahjong.Decompose(h14, nil); len(out) != 0 {
		t.Fatalf("hand without pair must not decompose, got %v", out)
	}
}
