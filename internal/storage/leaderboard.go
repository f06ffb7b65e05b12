package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Leaderboard 按胜场从高到低返回前 limit 名
func (rs *RedisStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	results, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}

		entry := LeaderboardEntry{
			Rank: i + 1,
			Name: name,
			Wins: int64(z.Score),
		}
		if stats, err := rs.PlayerStats(ctx, name); err == nil && stats != nil {
			entry.Games = stats.Games
			entry.WinRate = stats.WinRate
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PlayerRank 玩家排名（1 起始），未上榜返回 0
func (rs *RedisStore) PlayerRank(ctx context.Context, name string) (int64, error) {
	rank, err := rs.client.ZRevRank(ctx, leaderboardKey, name).Result()
	if err != nil {
		if isNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return rank + 1, nil
}

func winRate(wins, games int64) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games) * 100
}

func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
