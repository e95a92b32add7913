package mahjong

// RenhouPolicy 人和的规则档位
type RenhouPolicy string

const (
	RenhouYakuman RenhouPolicy = "yakuman" // 役满
	RenhouTwoHan  RenhouPolicy = "2han"    // 2番（标准竞技规则）
	RenhouOff     RenhouPolicy = "off"     // 不启用
)

// Ruleset 规则变体配置。数值由配置层装载，引擎只消费
type Ruleset struct {
	RenhouPolicy        RenhouPolicy // 人和档位
	PinfuRequireRyanmen bool         // 平和是否要求两面听
	ChantaEnabled       bool
	ChantaOpenHan       int
	ChantaClosedHan     int
	JunchanOpenHan      int
	JunchanClosedHan    int
	SuuankouTankiDouble bool // 四暗刻单骑双倍役满
	ChuurenPureDouble   bool // 纯正九莲宝灯双倍役满
	KiriageMangan       bool // 切上满贯：30符4番、60符3番按满贯
	UseRedFives         bool
}

// StandardRuleset 标准竞技规则
func StandardRuleset() *Ruleset {
	return &Ruleset{
		RenhouPolicy:        RenhouTwoHan,
		PinfuRequireRyanmen: true,
		ChantaEnabled:       true,
		ChantaOpenHan:       1,
		ChantaClosedHan:     2,
		JunchanOpenHan:      2,
		JunchanClosedHan:    3,
		SuuankouTankiDouble: true,
		ChuurenPureDouble:   true,
		KiriageMangan:       false,
		UseRedFives:         true,
	}
}
