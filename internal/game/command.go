package game

import "github.com/palemoky/rummy/internal/game/rule"

// DrawChoice 摸牌来源
type DrawChoice int

const (
	DrawFromDeck DrawChoice = iota
	DrawFromDiscard
)

// ChooseDraw 弃牌堆为空时只能从牌堆摸牌
func ChooseDraw(discardAvailable, wantDiscard bool) DrawChoice {
	if discardAvailable && wantDiscard {
		return DrawFromDiscard
	}
	return DrawFromDeck
}

// ArrangeCommand 整理手牌菜单选项
type ArrangeCommand int

const (
	ArrangeUnknown ArrangeCommand = iota
	ArrangeDone
	ArrangeSortRank
	ArrangeSortSuit
	ArrangeSwap
)

// arrangeCodes 菜单编号到命令的映射
var arrangeCodes = map[int]ArrangeCommand{
	0: ArrangeDone,
	1: ArrangeSortRank,
	2: ArrangeSortSuit,
	3: ArrangeSwap,
}

// ParseArrangeCommand 未知编号返回 ArrangeUnknown
func ParseArrangeCommand(code int) ArrangeCommand {
	if cmd, ok := arrangeCodes[code]; ok {
		return cmd
	}
	return ArrangeUnknown
}

const arrangeMenu = "Sort by:\n 1. rank\n 2. suits and rank\n 3. swap\n 0. exit"

// CheckCommand 检查胡牌菜单选项
type CheckCommand int

const (
	CheckUnknown CheckCommand = iota
	CheckExit
	CheckSet
	CheckRun
	CheckReset
)

var checkCodes = map[int]CheckCommand{
	0: CheckExit,
	1: CheckSet,
	2: CheckRun,
	3: CheckReset,
}

// ParseCheckCommand 未知编号返回 CheckUnknown
func ParseCheckCommand(code int) CheckCommand {
	if cmd, ok := checkCodes[code]; ok {
		return cmd
	}
	return CheckUnknown
}

// GroupType 检查命令对应的组合类型
func (c CheckCommand) GroupType() rule.GroupType {
	switch c {
	case CheckSet:
		return rule.Set
	case CheckRun:
		return rule.Run
	default:
		return rule.Invalid
	}
}

const checkMenu = "Check:\n 1. sets\n 2. runs\n 3. reset cards\n 0. exit"
