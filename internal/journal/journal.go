// Package journal appends round events to a file as length-delimited
// protobuf records and reads them back for replay.
package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/rummy/internal/game"
)

// Entry is one replayed event.
type Entry struct {
	Kind    game.EventKind
	RoundID string
	Turn    int
	Player  string
	Cards   []string
	Detail  string
	At      time.Time
}

// Journal writes events to an underlying writer. It is safe for
// concurrent use.
type Journal struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
}

// New wraps w. Close flushes but does not close w.
func New(w io.Writer) *Journal {
	return &Journal{w: bufio.NewWriter(w)}
}

// Open appends to the file at path, creating it and its directory if needed.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{w: bufio.NewWriter(f), closer: f}, nil
}

// Record encodes e and flushes it so a crash loses at most the current event.
func (j *Journal) Record(e game.Event) error {
	msg, err := encode(e)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.w == nil {
		return errors.New("journal: closed")
	}
	if _, err := protodelim.MarshalTo(j.w, msg); err != nil {
		return fmt.Errorf("journal: write %s event: %w", e.Kind, err)
	}
	return j.w.Flush()
}

// Close flushes pending data and closes the file opened by Open.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.w == nil {
		return nil
	}
	err := j.w.Flush()
	j.w = nil
	if j.closer != nil {
		if cerr := j.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadAll decodes every record in r until EOF.
func ReadAll(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	var entries []Entry
	for {
		msg := &structpb.Struct{}
		if err := protodelim.UnmarshalFrom(br, msg); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return entries, fmt.Errorf("journal: record %d: %w", len(entries)+1, err)
		}
		entries = append(entries, decode(msg))
	}
}

// ReadFile reads the journal stored at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAll(f)
}

func encode(e game.Event) (*structpb.Struct, error) {
	cards := make([]any, len(e.Cards))
	for i, c := range e.Cards {
		cards[i] = c.String()
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	msg, err := structpb.NewStruct(map[string]any{
		"kind":     string(e.Kind),
		"round_id": e.RoundID,
		"turn":     e.Turn,
		"player":   e.Player,
		"cards":    cards,
		"detail":   e.Detail,
		"at":       at.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("journal: encode %s event: %w", e.Kind, err)
	}
	return msg, nil
}

func decode(msg *structpb.Struct) Entry {
	f := msg.GetFields()
	e := Entry{
		Kind:    game.EventKind(f["kind"].GetStringValue()),
		RoundID: f["round_id"].GetStringValue(),
		Turn:    int(f["turn"].GetNumberValue()),
		Player:  f["player"].GetStringValue(),
		Detail:  f["detail"].GetStringValue(),
	}
	for _, v := range f["cards"].GetListValue().GetValues() {
		e.Cards = append(e.Cards, v.GetStringValue())
	}
	if at, err := time.Parse(time.RFC3339Nano, f["at"].GetStringValue()); err == nil {
		e.At = at
	}
	return e
}
