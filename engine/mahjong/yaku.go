package mahjong

// Yaku 役种（和牌方式）
type Yaku int

// 役种常量定义
const (
	// 基本役
	YakuRiichi  Yaku = iota // 立直：门清状态下宣布立直，并放置1000点棒
	YakuIppatsu             // 一发：立直后一巡内和牌，期间无人鸣牌
	YakuTsumo               // 门前清自摸和：门清状态下自摸和牌

	// 平和系
	YakuPinfu     // 平和：4顺子+非役牌雀头，两面听牌
	YakuIppeiko   // 一杯口：同种花色、同种顺子有两组
	YakuRyanpeiko // 二杯口：手牌中有两个不同的一杯口

	// 役牌系
	YakuHaku      // 役牌 白
	YakuHatsu     // 役牌 发
	YakuChun      // 役牌 中
	YakuRoundWind // 役牌 场风刻子
	YakuSeatWind  // 役牌 自风刻子

	// 断幺系
	YakuTanyao // 断幺九：手牌全部由数牌2-8组成

	// 顺子系
	YakuSanshoku // 三色同顺：相同顺子在三种花色中都出现
	YakuIttsu    // 一气通贯：同种花色有123、456、789三个顺子

	// 带幺系
	YakuChanta  // 混全带幺九：所有面子都包含幺九牌
	YakuJunchan // 纯全带幺九：所有面子都包含数牌幺九(1、9)

	// 老头系
	YakuHonroto // 混老头：全部由幺九牌(1、9、字牌)组成的对对和

	// 清一色系
	YakuHonitsu  // 混一色：一种花色+字牌
	YakuChinitsu // 清一色：同一种花色(无字牌)

	// 刻子系
	YakuToitoi         // 对对和：4个刻子(杠子)+1个对子
	YakuSananko        // 三暗刻：手牌中有3个暗刻
	YakuSankantsu      // 三杠子：手牌中有3个杠子
	YakuSanshokuDoukou // 三色同刻：三种花色同数字的刻子
	YakuShousangen     // 小三元：两组三元牌刻子+三元牌雀头

	// 偶然役
	YakuHaitei  // 海底捞月：自摸牌山最后一张
	YakuHoutei  // 河底捞鱼：荣和最后一张弃牌
	YakuRinshan // 岭上开花：杠后岭上牌自摸
	YakuRenhou  // 人和：闲家第一巡荣和，档位由规则决定

	// 特殊型
	YakuChiitoi // 七对子：7个不同的对子

	// 役满役种
	YakuTenhou        // 天和：庄家第一巡自摸
	YakuChihou        // 地和：闲家第一巡自摸
	YakuKokushi       // 国士无双(十三幺)：13种幺九牌各1张+其中任意1张
	YakuKokushi13     // 国士十三面（双倍）
	YakuSuuankou      // 四暗刻：手牌中有四个暗刻
	YakuSuuankouTanki // 四暗刻单骑（双倍）：四暗刻且听牌形式为单骑
	YakuDaisangen     // 大三元：三组三元牌刻子
	YakuSuukantsu     // 四杠子：四组杠子
	YakuShousushi     // 小四喜：三组风牌刻子+风牌雀头
	YakuDaisushi      // 大四喜：四组风牌刻子
	YakuChinroto      // 清老头：全部由数牌幺九(1、9)组成的对对和
	YakuTsuuiisou     // 字一色：全部由字牌组成
	YakuRyuuiisou     // 绿一色：全部由绿牌（23468索、发）组成
	YakuChuuren       // 九莲宝灯：同一种花色的1112345678999，加上任意一张同花色的牌
	YakuJunseiChuuren // 纯正九莲宝灯（双倍）：九面听的九莲宝灯
)

var yakuNames = map[Yaku]string{
	YakuRiichi:         "riichi",
	YakuIppatsu:        "ippatsu",
	YakuTsumo:          "menzen-tsumo",
	YakuPinfu:          "pinfu",
	YakuIppeiko:        "iipeikou",
	YakuRyanpeiko:      "ryanpeikou",
	YakuHaku:           "yakuhai-haku",
	YakuHatsu:          "yakuhai-hatsu",
	YakuChun:           "yakuhai-chun",
	YakuRoundWind:      "yakuhai-round-wind",
	YakuSeatWind:       "yakuhai-seat-wind",
	YakuTanyao:         "tanyao",
	YakuSanshoku:       "sanshoku-doujun",
	YakuIttsu:          "ittsu",
	YakuChanta:         "chanta",
	YakuJunchan:        "junchan",
	YakuHonroto:        "honroutou",
	YakuHonitsu:        "honitsu",
	YakuChinitsu:       "chinitsu",
	YakuToitoi:         "toitoi",
	YakuSananko:        "sanankou",
	YakuSankantsu:      "sankantsu",
	YakuSanshokuDoukou: "sanshoku-doukou",
	YakuShousangen:     "shousangen",
	YakuHaitei:         "haitei",
	YakuHoutei:         "houtei",
	YakuRinshan:        "rinshan",
	YakuRenhou:         "renhou",
	YakuChiitoi:        "chiitoitsu",
	YakuTenhou:         "tenhou",
	YakuChihou:         "chihou",
	YakuKokushi:        "kokushi-musou",
	YakuKokushi13:      "kokushi-musou-13men",
	YakuSuuankou:       "suuankou",
	YakuSuuankouTanki:  "suuankou-tanki",
	YakuDaisangen:      "daisangen",
	YakuSuukantsu:      "suukantsu",
	YakuShousushi:      "shousuushi",
	YakuDaisushi:       "daisuushi",
	YakuChinroto:       "chinroutou",
	YakuTsuuiisou:      "tsuuiisou",
	YakuRyuuiisou:      "ryuuiisou",
	YakuChuuren:        "chuuren-poutou",
	YakuJunseiChuuren:  "junsei-chuuren-poutou",
}

func (y Yaku) String() string {
	if name, ok := yakuNames[y]; ok {
		return name
	}
	return "unknown"
}

// YakuResult 一个命中的役种。Yakuman 是役满倍数（0 表示普通役）
type YakuResult struct {
	ID      Yaku
	Han     int
	Yakuman int
}

// WinContext 和牌时的局面上下文，全部由编排层算好传入
type WinContext struct {
	WinTile          Tile
	IsTsumo          bool
	IsFirstTurn      bool // 第一巡且无人鸣牌
	TurnsAfterRiichi int  // 立直后经过的巡数，-1 表示未跟踪
	IsLastTile       bool // 海底/河底
	IsRinshan        bool // 杠后岭上摸牌
	RoundWind        Wind
	SeatWind         Wind
	IsDealer         bool
	Rules            *Ruleset
}

func (ctx *WinContext) ruleset() *Ruleset {
	if ctx.Rules != nil {
		return ctx.Rules
	}
	return StandardRuleset()
}

type YakuChecker interface {
	ID() Yaku
	Check(h *Hand, d Decomposition, ctx *WinContext) []YakuResult
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(h *Hand, d Decomposition, ctx *WinContext) []YakuResult
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(h *Hand, d Decomposition, ctx *WinContext) []YakuResult {
	return f.check(h, d, ctx)
}

// EvaluateYaku 对一个分解做役种评估。d 为 nil 时走特殊牌型路径
// （国士无双、七对子）。优先级：天和地和人和 > 国士 > 七对子 >
// 普通役累加，其中役满命中时只保留役满（立直可以与役满复合）
func EvaluateYaku(h *Hand, win Tile, d Decomposition, ctx *WinContext) []YakuResult {
	if r, ok := checkBlessing(h, ctx); ok {
		return []YakuResult{r}
	}

	allCounts := h.Counts()
	allCounts[int(win.Type)]++

	if d == nil {
		return evaluateIrregular(h, win, allCounts, ctx)
	}

	results := make([]YakuResult, 0, 8)
	for _, checker := range normalYakuRegistry {
		results = append(results, checker.Check(h, d, ctx)...)
	}

	yakumanResults := make([]YakuResult, 0, 2)
	for _, checker := range yakumanYakuRegistry {
		yakumanResults = append(yakumanResults, checker.Check(h, d, ctx)...)
	}

	// 役满覆盖其他役种，多个役满可以复合，立直保留
	if len(yakumanResults) > 0 {
		if h.Riichi {
			yakumanResults = append([]YakuResult{{ID: YakuRiichi, Han: 1}}, yakumanResults...)
		}
		return yakumanResults
	}

	return filterConflictingYaku(results)
}

// evaluateIrregular 无面子结构的两种文法
func evaluateIrregular(h *Hand, win Tile, allCounts Hand34, ctx *WinContext) []YakuResult {
	if len(h.Melds) == 0 && IsAgariKokushi(allCounts) {
		r := YakuResult{ID: YakuKokushi, Han: 13, Yakuman: 1}
		// 和牌张凑成将眼即十三面听
		if allCounts[int(win.Type)] == 2 {
			r = YakuResult{ID: YakuKokushi13, Han: 26, Yakuman: 2}
		}
		results := []YakuResult{r}
		if h.Riichi {
			results = append([]YakuResult{{ID: YakuRiichi, Han: 1}}, results...)
		}
		return results
	}

	if len(h.Melds) == 0 && IsAgariChiitoi(allCounts) {
		results := []YakuResult{{ID: YakuChiitoi, Han: 2}}
		if h.Riichi {
			results = append([]YakuResult{{ID: YakuRiichi, Han: 1}}, results...)
		}
		return results
	}

	return nil
}

// checkBlessing 天和、地和、人和。命中时单独返回，不与其他役复合
func checkBlessing(h *Hand, ctx *WinContext) (YakuResult, bool) {
	if !ctx.IsFirstTurn || !h.IsConcealed() {
		return YakuResult{}, false
	}
	if ctx.IsTsumo {
		if ctx.IsDealer {
			return YakuResult{ID: YakuTenhou, Han: 13, Yakuman: 1}, true
		}
		return YakuResult{ID: YakuChihou, Han: 13, Yakuman: 1}, true
	}
	if ctx.IsDealer {
		return YakuResult{}, false
	}
	switch ctx.ruleset().RenhouPolicy {
	case RenhouYakuman:
		return YakuResult{ID: YakuRenhou, Han: 13, Yakuman: 1}, true
	case RenhouTwoHan:
		return YakuResult{ID: YakuRenhou, Han: 2}, true
	default:
		return YakuResult{}, false
	}
}

// filterConflictingYaku 役种互斥过滤：结构上不可能共存或高级役覆盖
// 低级役的组合在这里裁掉
func filterConflictingYaku(results []YakuResult) []YakuResult {
	present := make(map[Yaku]bool, len(results))
	for _, r := range results {
		present[r.ID] = true
	}
	hasAnyYakuhai := present[YakuHaku] || present[YakuHatsu] || present[YakuChun] ||
		present[YakuRoundWind] || present[YakuSeatWind]

	filtered := make([]YakuResult, 0, len(results))
	for _, r := range results {
		switch r.ID {
		case YakuToitoi:
			if present[YakuSanshoku] || present[YakuIttsu] || present[YakuIppeiko] || present[YakuRyanpeiko] || present[YakuPinfu] {
				continue
			}
		case YakuPinfu:
			if hasAnyYakuhai || present[YakuToitoi] || present[YakuIppeiko] || present[YakuRyanpeiko] {
				continue
			}
		case YakuTanyao:
			if present[YakuIttsu] || present[YakuJunchan] || present[YakuChanta] || present[YakuHonroto] {
				continue
			}
		case YakuIppeiko:
			if present[YakuRyanpeiko] {
				continue
			}
		case YakuChinitsu:
			if present[YakuHonitsu] {
				continue
			}
		case YakuHonitsu:
			if present[YakuChinitsu] {
				continue
			}
		case YakuJunchan:
			if present[YakuChanta] {
				continue
			}
		case YakuChanta:
			if present[YakuJunchan] {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}
