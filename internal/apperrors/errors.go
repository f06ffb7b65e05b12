package apperrors

import "errors"

// 错误码
const (
	ErrCodeUnknown          = 1000
	ErrCodeMalformedInput   = 1001 // 输入格式错误，需要重新输入
	ErrCodeUnknownCommand   = 1002 // 未知的菜单选项
	ErrCodeSetup            = 2001 // 开局参数错误，直接退出
	ErrCodeInvalidSelection = 3001 // 选中的牌不是合法组合
	ErrCodeDeckExhausted    = 3002 // 牌堆和弃牌堆都没有可用的牌
	ErrCodeSeatClosed       = 4001 // 远程座位断开
)

// GameError 游戏错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Is 按错误码匹配，使包装后的错误也能用 errors.Is 判断
func (e *GameError) Is(target error) bool {
	var t *GameError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// 预定义错误
var (
	ErrMalformedInput   = &GameError{Code: ErrCodeMalformedInput, Message: "malformed input"}
	ErrUnknownCommand   = &GameError{Code: ErrCodeUnknownCommand, Message: "unknown command"}
	ErrSetup            = &GameError{Code: ErrCodeSetup, Message: "invalid game setup"}
	ErrInvalidSelection = &GameError{Code: ErrCodeInvalidSelection, Message: "invalid selection"}
	ErrDeckExhausted    = &GameError{Code: ErrCodeDeckExhausted, Message: "no cards left to draw"}
	ErrSeatClosed       = &GameError{Code: ErrCodeSeatClosed, Message: "remote seat disconnected"}
)

// New 基于已有错误码创建带具体描述的错误
func New(code int, message string) *GameError {
	return &GameError{Code: code, Message: message}
}

// CodeOf 返回错误链中第一个 GameError 的错误码，没有则返回 ErrCodeUnknown
func CodeOf(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ErrCodeUnknown
}
