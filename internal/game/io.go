package game

import (
	"context"

	"github.com/palemoky/rummy/internal/game/card"
)

// Input 玩家输入来源，实现方负责在格式错误时重新提示
type Input interface {
	// Confirm 是/否选择
	Confirm(ctx context.Context, prompt string) (bool, error)
	// Int 读取一个整数
	Int(ctx context.Context, prompt string) (int, error)
	// Ints 读取以空格分隔的整数列表
	Ints(ctx context.Context, prompt string) ([]int, error)
	// Text 读取一行文本
	Text(ctx context.Context, prompt string) (string, error)
}

// Output 展示手牌、单张牌和状态消息
type Output interface {
	ShowHand(owner string, hand []card.Card)
	ShowCard(label string, c card.Card)
	Message(text string)
}
