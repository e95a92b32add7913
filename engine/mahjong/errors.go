package mahjong

import "errors"

// 结构不变量错误：构造期直接拒绝，公开调用路径不应触达
var (
	ErrInvalidMeld       = errors.New("面子结构非法")
	ErrInvalidTileString = errors.New("牌谱字符串非法")
)

// 操作校验错误：校验失败时手牌不发生任何变更
var (
	ErrTileNotInHand = errors.New("手牌中没有该牌")
	ErrCannotPon     = errors.New("不满足碰的条件")
	ErrCannotChi     = errors.New("不满足吃的条件")
	ErrCannotKan     = errors.New("不满足杠的条件")
	ErrMeldNotFound  = errors.New("找不到可加杠的碰副露")
	ErrCannotRiichi  = errors.New("不满足立直的条件")
)

// 输入契约错误：调用方缺陷，直接上抛
var (
	ErrHandSize = errors.New("手牌张数与副露数不匹配")
	ErrNoYaku   = errors.New("役种集合为空，无法计分")
	ErrNotAgari = errors.New("牌型未和牌")
)
