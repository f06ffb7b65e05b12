// Package protocol 定义远程座位与牌桌之间交换的消息
package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgAnswer MessageType = "answer" // 回答提示
)

// 服务端 → 客户端 消息类型
const (
	MsgWelcome  MessageType = "welcome"   // 入座成功
	MsgPrompt   MessageType = "prompt"    // 需要玩家输入
	MsgHand     MessageType = "hand"      // 展示手牌
	MsgCard     MessageType = "card"      // 展示单张牌
	MsgWild     MessageType = "wild"      // 本局万能牌
	MsgText     MessageType = "text"      // 文本消息
	MsgGameOver MessageType = "game_over" // 对局结束
	MsgError    MessageType = "error"     // 错误
)

// WelcomePayload 入座成功
type WelcomePayload struct {
	Name    string   `json:"name"`
	Waiting []string `json:"waiting,omitempty"` // 尚未入座的玩家
}

// PromptPayload 服务端提示，客户端用相同 ID 回答
type PromptPayload struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// AnswerPayload 客户端回答
type AnswerPayload struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// HandPayload 手牌
type HandPayload struct {
	Owner string     `json:"owner"`
	Cards []CardInfo `json:"cards"`
}

// CardPayload 单张牌
type CardPayload struct {
	Label string   `json:"label"`
	Card  CardInfo `json:"card"`
}

// WildPayload 万能点数
type WildPayload struct {
	Rank int `json:"rank"`
}

// TextPayload 文本消息
type TextPayload struct {
	Text string `json:"text"`
}

// GameOverPayload 对局结束
type GameOverPayload struct {
	Winner string `json:"winner,omitempty"`
	Text   string `json:"text"`
}

// ErrorPayload 错误
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CardInfo 牌的传输格式
type CardInfo struct {
	Suit int `json:"suit"` // 花色: 0=梅花, 1=方块, 2=红心, 3=黑桃, 4=王
	Rank int `json:"rank"` // 点数: 1-13 (A-K), 14=王
}
