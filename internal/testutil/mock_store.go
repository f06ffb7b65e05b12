//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/rummy/internal/storage"
)

// MockResultStore 对局结果存储 mock
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) RecordRound(ctx context.Context, rec *storage.RoundRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockResultStore) Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.LeaderboardEntry), args.Error(1)
}
