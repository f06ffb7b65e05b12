package network

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/palemoky/rummy/internal/logger"
	"github.com/palemoky/rummy/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 座位按昵称预留，不限制来源
	},
}

// Lobby 等待预留座位上的远程玩家全部入座
type Lobby struct {
	mu       sync.Mutex
	expected []string
	pending  map[string]bool
	seats    map[string]*Seat

	ready     chan struct{}
	readyOnce sync.Once
}

// NewLobby 为给定昵称预留座位
func NewLobby(names []string) *Lobby {
	l := &Lobby{
		expected: slices.Clone(names),
		pending:  make(map[string]bool),
		seats:    make(map[string]*Seat),
		ready:    make(chan struct{}),
	}
	if len(names) == 0 {
		l.markReady()
	}
	return l
}

func (l *Lobby) markReady() {
	l.readyOnce.Do(func() { close(l.ready) })
}

// Handler 返回处理 /seat 和 /health 的 HTTP handler
func (l *Lobby) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/seat", l.handleSeat)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// handleSeat 处理入座请求 ws://host/seat?name=<昵称>
func (l *Lobby) handleSeat(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	l.mu.Lock()
	switch {
	case !slices.Contains(l.expected, name):
		l.mu.Unlock()
		logger.LogInfo("lobby: rejected unknown seat %q from %s", name, r.RemoteAddr)
		http.Error(w, "no seat reserved for this name", http.StatusForbidden)
		return
	case l.pending[name] || l.seats[name] != nil:
		l.mu.Unlock()
		http.Error(w, "seat already taken", http.StatusConflict)
		return
	}
	l.pending[name] = true
	l.mu.Unlock()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError("lobby: upgrade for %s failed: %v", name, err)
		l.mu.Lock()
		delete(l.pending, name)
		l.mu.Unlock()
		return
	}

	seat := newSeat(name, conn)
	go seat.readPump()
	go seat.writePump()

	l.mu.Lock()
	delete(l.pending, name)
	l.seats[name] = seat
	waiting := l.waitingLocked()
	others := make([]*Seat, 0, len(l.seats)-1)
	for n, s := range l.seats {
		if n != name {
			others = append(others, s)
		}
	}
	l.mu.Unlock()

	logger.LogInfo("lobby: %s joined from %s, waiting for %v", name, r.RemoteAddr, waiting)
	_ = seat.Send(protocol.MustNewMessage(protocol.MsgWelcome, protocol.WelcomePayload{Name: name, Waiting: waiting}))
	for _, s := range others {
		s.Message(fmt.Sprintf("%s has joined the table", name))
	}
	if len(waiting) == 0 {
		l.markReady()
	}
}

func (l *Lobby) waitingLocked() []string {
	var waiting []string
	for _, name := range l.expected {
		if l.seats[name] == nil {
			waiting = append(waiting, name)
		}
	}
	return waiting
}

// Wait 阻塞到所有座位都有人，返回按昵称索引的座位
func (l *Lobby) Wait(ctx context.Context) (map[string]*Seat, error) {
	select {
	case <-l.ready:
		l.mu.Lock()
		defer l.mu.Unlock()
		return maps.Clone(l.seats), nil
	case <-ctx.Done():
		l.mu.Lock()
		waiting := l.waitingLocked()
		l.mu.Unlock()
		return nil, fmt.Errorf("still waiting for %s: %w", strings.Join(waiting, ", "), ctx.Err())
	}
}

// Seats 已入座的座位
func (l *Lobby) Seats() []*Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Collect(maps.Values(l.seats))
}

// Close 关闭所有座位
func (l *Lobby) Close() {
	for _, s := range l.Seats() {
		s.Close()
	}
}
