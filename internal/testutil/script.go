//go:build !production

package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Script 按顺序返回预设回答的 LineReader，回答用完后返回 io.EOF
type Script struct {
	mu      sync.Mutex
	answers []string
	prompts []string
}

// NewScript 创建脚本输入
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

func (s *Script) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("script exhausted at prompt %q: %w", prompt, io.EOF)
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

// Push 追加回答
func (s *Script) Push(answers ...string) {
	s.mu.Lock()
	s.answers = append(s.answers, answers...)
	s.mu.Unlock()
}

// Remaining 尚未使用的回答数
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Prompts 已经显示过的提示
func (s *Script) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
