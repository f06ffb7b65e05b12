package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game"
	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/protocol"
	"github.com/palemoky/rummy/internal/protocol/codec"
	"github.com/palemoky/rummy/internal/protocol/convert"
	"github.com/palemoky/rummy/internal/ui/prompt"
)

// Client 远程座位的客户端
type Client struct {
	Name string
	conn *websocket.Conn
}

// Dial 连接牌桌并按昵称入座，serverURL 形如 ws://host:port
func Dial(ctx context.Context, serverURL, name string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/seat"
	}
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("join as %s refused: %s", name, resp.Status)
		}
		return nil, err
	}
	return &Client{Name: name, conn: conn}, nil
}

// wildSetter 可以高亮万能牌的输出
type wildSetter interface {
	SetWild(r card.Rank)
}

// Run 处理服务端消息直到对局结束，提示通过 in 回答，其余消息交给 out
func (c *Client) Run(ctx context.Context, in prompt.LineReader, out game.Output) error {
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer stop()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", apperrors.ErrSeatClosed, err)
		}

		msg, err := codec.Decode(data)
		if err != nil {
			continue
		}

		done, err := c.handle(ctx, msg, in, out)
		if err != nil || done {
			return err
		}
	}
}

func (c *Client) handle(ctx context.Context, msg *protocol.Message, in prompt.LineReader, out game.Output) (bool, error) {
	switch msg.Type {
	case protocol.MsgWelcome:
		p, err := protocol.ParsePayload[protocol.WelcomePayload](msg)
		if err != nil {
			return false, err
		}
		text := fmt.Sprintf("Seated as %s.", p.Name)
		if len(p.Waiting) > 0 {
			text += " Waiting for " + strings.Join(p.Waiting, ", ") + "..."
		}
		out.Message(text)

	case protocol.MsgPrompt:
		p, err := protocol.ParsePayload[protocol.PromptPayload](msg)
		if err != nil {
			return false, err
		}
		line, err := in.ReadLine(ctx, p.Text)
		if err != nil {
			return false, err
		}
		return false, c.send(protocol.MustNewMessage(protocol.MsgAnswer, protocol.AnswerPayload{ID: p.ID, Text: line}))

	case protocol.MsgHand:
		p, err := protocol.ParsePayload[protocol.HandPayload](msg)
		if err != nil {
			return false, err
		}
		cards, err := convert.InfosToCards(p.Cards)
		if err != nil {
			return false, err
		}
		out.ShowHand(p.Owner, cards)

	case protocol.MsgCard:
		p, err := protocol.ParsePayload[protocol.CardPayload](msg)
		if err != nil {
			return false, err
		}
		cd, err := convert.InfoToCard(p.Card)
		if err != nil {
			return false, err
		}
		out.ShowCard(p.Label, cd)

	case protocol.MsgWild:
		p, err := protocol.ParsePayload[protocol.WildPayload](msg)
		if err != nil {
			return false, err
		}
		if ws, ok := out.(wildSetter); ok {
			ws.SetWild(card.Rank(p.Rank))
		}

	case protocol.MsgText:
		p, err := protocol.ParsePayload[protocol.TextPayload](msg)
		if err != nil {
			return false, err
		}
		out.Message(p.Text)

	case protocol.MsgGameOver:
		p, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
		if err != nil {
			return false, err
		}
		out.Message(p.Text)
		return true, nil

	case protocol.MsgError:
		p, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return false, err
		}
		out.Message(p.Message)
	}
	return false, nil
}

func (c *Client) send(msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close 发送关闭帧并断开连接
func (c *Client) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	err := c.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
