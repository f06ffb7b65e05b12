// Package prompt turns line-oriented input into the typed answers the game asks for.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/rummy/internal/apperrors"
)

// LineReader reads one answer line after showing a prompt.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Console parses answers from a LineReader and asks again on malformed input.
type Console struct {
	r      LineReader
	notify func(string)
}

// NewConsole creates a Console. notify receives the hint shown before re-asking; it may be nil.
func NewConsole(r LineReader, notify func(string)) *Console {
	if notify == nil {
		notify = func(string) {}
	}
	return &Console{r: r, notify: notify}
}

// ask reads lines until parse accepts one
func ask[T any](ctx context.Context, c *Console, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := c.r.ReadLine(ctx, prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		c.notify(err.Error())
	}
}

// Confirm accepts y/yes and n/no in any case.
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	return ask(ctx, c, prompt, ParseYesNo)
}

// Int reads a single integer.
func (c *Console) Int(ctx context.Context, prompt string) (int, error) {
	return ask(ctx, c, prompt, ParseInt)
}

// Ints reads space separated integers.
func (c *Console) Ints(ctx context.Context, prompt string) ([]int, error) {
	return ask(ctx, c, prompt, ParseInts)
}

// Text reads a non-empty line.
func (c *Console) Text(ctx context.Context, prompt string) (string, error) {
	return ask(ctx, c, prompt, func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", malformed("please enter some text")
		}
		return s, nil
	})
}

func malformed(format string, args ...any) error {
	return apperrors.New(apperrors.ErrCodeMalformedInput, fmt.Sprintf(format, args...))
}

// ParseYesNo parses a yes/no answer.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, malformed("please answer y or n")
	}
}

// ParseInt parses a single integer.
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, malformed("please enter a whole number")
	}
	return n, nil
}

// ParseInts parses space separated integers; at least one is required.
func ParseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, malformed("please enter numbers separated by spaces")
	}
	result := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, malformed("%q is not a number", f)
		}
		result[i] = n
	}
	return result, nil
}
