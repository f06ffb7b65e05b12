package game

import (
	"time"

	"github.com/palemoky/rummy/internal/game/card"
)

// EventKind 牌局事件类型
type EventKind string

const (
	EventStart       EventKind = "start"        // 开局，Cards 为万能牌和弃牌堆首张
	EventDeal        EventKind = "deal"         // 发牌，Cards 为玩家初始手牌
	EventDraw        EventKind = "draw"         // 从牌堆摸牌
	EventTakeDiscard EventKind = "take_discard" // 从弃牌堆拿牌
	EventDiscard     EventKind = "discard"      // 弃牌
	EventRecycle     EventKind = "recycle"      // 弃牌堆洗回牌堆
	EventGroup       EventKind = "group"        // 胡牌检查中接受了一组牌
	EventWin         EventKind = "win"          // 胡牌
)

// Event 牌局事件
type Event struct {
	Kind    EventKind
	RoundID string
	Turn    int
	Player  string
	Cards   []card.Card
	Detail  string
	At      time.Time
}

// Recorder 记录牌局事件
type Recorder interface {
	Record(e Event) error
}

// RecorderFunc 适配普通函数
type RecorderFunc func(e Event) error

func (f RecorderFunc) Record(e Event) error {
	return f(e)
}

// MultiRecorder 依次写入多个 Recorder，返回第一个错误
func MultiRecorder(recorders ...Recorder) Recorder {
	return RecorderFunc(func(e Event) error {
		var first error
		for _, r := range recorders {
			if r == nil {
				continue
			}
			if err := r.Record(e); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
