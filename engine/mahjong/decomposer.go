package mahjong

// Decompose 枚举普通牌型的全部分解：h 是手牌加和牌张的牌种计数，
// fixed 是已宣布的副露。结果顺序确定：雀头牌种升序，面子内部先刻后顺、
// 基准牌升序，副露按宣布顺序附在末尾
func Decompose(h Hand34, fixed []Meld) []Decomposition {
	need := 4 - len(fixed)
	if need < 0 {
		return nil
	}

	fixedGroups := make([]Group, 0, len(fixed))
	for _, m := range fixed {
		fixedGroups = append(fixedGroups, groupOfMeld(m))
	}

	var out []Decomposition
	acc := make([]Group, 0, 4)

	for p := 0; p < TileKinds; p++ {
		if h[p] < 2 {
			continue
		}
		work := h
		work[p] -= 2
		pair := Group{Kind: MeldPair, Base: TileType(p), Concealed: true}
		collectMelds(&work, need, acc, func(groups []Group) {
			d := make(Decomposition, 0, 1+4)
			d = append(d, pair)
			d = append(d, groups...)
			d = append(d, fixedGroups...)
			out = append(out, d)
		})
	}
	return out
}

// collectMelds 在剩余牌上回溯拆面子：取最小的非零牌种，先试刻子再试顺子。
// 同一个多重集按这个顺序只会产出一次同样的单元组合
func collectMelds(h *Hand34, need int, acc []Group, emit func([]Group)) {
	if need == 0 {
		for i := 0; i < TileKinds; i++ {
			if (*h)[i] != 0 {
				return
			}
		}
		emit(acc)
		return
	}

	i := -1
	for k := 0; k < TileKinds; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		collectMelds(h, need-1, append(acc, Group{Kind: MeldTriplet, Base: TileType(i), Concealed: true}), emit)
		(*h)[i] += 3
	}

	if isNumberTile(i) && i+2 < TileKinds && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			collectMelds(h, need-1, append(acc, Group{Kind: MeldSequence, Base: TileType(i), Concealed: true}), emit)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}
}
