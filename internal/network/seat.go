// Package network 让玩家通过 WebSocket 远程入座
package network

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/logger"
	"github.com/palemoky/rummy/internal/protocol"
	"github.com/palemoky/rummy/internal/protocol/codec"
	"github.com/palemoky/rummy/internal/protocol/convert"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096
)

// Seat 一个远程玩家的连接，同时实现 prompt.LineReader 和 game.Output
type Seat struct {
	ID   string
	Name string

	conn    *websocket.Conn
	send    chan []byte
	answers chan protocol.AnswerPayload
	done    chan struct{}

	mu       sync.RWMutex
	closed   bool
	doneOnce sync.Once
	nextID   atomic.Int64
}

func newSeat(name string, conn *websocket.Conn) *Seat {
	return &Seat{
		ID:      uuid.NewString(),
		Name:    name,
		conn:    conn,
		send:    make(chan []byte, 64),
		answers: make(chan protocol.AnswerPayload, 4),
		done:    make(chan struct{}),
	}
}

// Done 连接断开后关闭
func (s *Seat) Done() <-chan struct{} {
	return s.done
}

// readPump 读取客户端回答，连接断开时关闭 done
func (s *Seat) readPump() {
	defer func() {
		s.doneOnce.Do(func() { close(s.done) })
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.LogError("seat %s: read failed: %v", s.Name, err)
			}
			return
		}

		msg, err := codec.Decode(data)
		if err != nil || msg.Type != protocol.MsgAnswer {
			_ = s.Send(protocol.NewErrorMessage(apperrors.ErrCodeMalformedInput, "expected an answer"))
			continue
		}
		answer, err := protocol.ParsePayload[protocol.AnswerPayload](msg)
		if err != nil {
			_ = s.Send(protocol.NewErrorMessage(apperrors.ErrCodeMalformedInput, "expected an answer"))
			continue
		}

		select {
		case s.answers <- *answer:
		default:
			logger.LogError("seat %s: dropping answer %d, nobody is waiting", s.Name, answer.ID)
		}
	}
}

// writePump 写出消息并定时发送 ping
func (s *Seat) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			return
		}
	}
}

// Send 排队发送一条消息
func (s *Seat) Send(msg *protocol.Message) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return apperrors.ErrSeatClosed
	}

	data, err := codec.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}

	select {
	case s.send <- data:
		return nil
	case <-s.done:
		return apperrors.ErrSeatClosed
	default:
		// 发送缓冲区已满
		return fmt.Errorf("%w: send buffer of %s is full", apperrors.ErrSeatClosed, s.Name)
	}
}

// ReadLine 发送提示并等待对应的回答
func (s *Seat) ReadLine(ctx context.Context, prompt string) (string, error) {
	id := s.nextID.Add(1)
	if err := s.Send(protocol.MustNewMessage(protocol.MsgPrompt, protocol.PromptPayload{ID: id, Text: prompt})); err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-s.done:
			return "", fmt.Errorf("%w: %s", apperrors.ErrSeatClosed, s.Name)
		case a := <-s.answers:
			if a.ID != id {
				// 过期的回答
				continue
			}
			return a.Text, nil
		}
	}
}

func (s *Seat) ShowHand(owner string, hand []card.Card) {
	s.deliver(protocol.MsgHand, protocol.HandPayload{Owner: owner, Cards: convert.CardsToInfos(hand)})
}

func (s *Seat) ShowCard(label string, c card.Card) {
	s.deliver(protocol.MsgCard, protocol.CardPayload{Label: label, Card: convert.CardToInfo(c)})
}

func (s *Seat) Message(text string) {
	s.deliver(protocol.MsgText, protocol.TextPayload{Text: text})
}

// SetWild 告诉客户端本局的万能点数
func (s *Seat) SetWild(r card.Rank) {
	s.deliver(protocol.MsgWild, protocol.WildPayload{Rank: int(r)})
}

// Finish 通知对局结束并关闭连接
func (s *Seat) Finish(winner, text string) {
	s.deliver(protocol.MsgGameOver, protocol.GameOverPayload{Winner: winner, Text: text})
	s.Close()
}

func (s *Seat) deliver(t protocol.MessageType, payload any) {
	if err := s.Send(protocol.MustNewMessage(t, payload)); err != nil {
		logger.LogError("seat %s: %s not delivered: %v", s.Name, t, err)
	}
}

// Close 关闭发送通道，writePump 随后发送关闭帧
func (s *Seat) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}
