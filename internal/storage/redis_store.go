// Package storage 使用 Redis 保存对局结果和玩家战绩
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	roundKeyPrefix  = "round:"
	recentRoundsKey = "rounds:recent"
	playerStatsKey  = "player:stats:"
	leaderboardKey  = "leaderboard:wins"

	// DefaultRecentLimit 最近对局列表保留的条数
	DefaultRecentLimit = 50
)

// RoundRecord 一局结束后保存的数据
type RoundRecord struct {
	ID         string        `json:"id"`
	Winner     string        `json:"winner"`
	Players    []string      `json:"players"`
	WildCard   string        `json:"wild_card"`
	Turns      int           `json:"turns"`
	Groups     []GroupRecord `json:"groups"`
	Policy     string        `json:"policy"`
	DurationMs int64         `json:"duration_ms"`
	FinishedAt int64         `json:"finished_at"`
}

// GroupRecord 胡牌时提交的一组牌
type GroupRecord struct {
	Type    string   `json:"type"`
	Cards   []string `json:"cards"`
	Natural bool     `json:"natural"`
}

// PlayerStats 玩家战绩
type PlayerStats struct {
	Name    string  `json:"name"`
	Games   int64   `json:"games"`
	Wins    int64   `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Wins    int64   `json:"wins"`
	Games   int64   `json:"games"`
	WinRate float64 `json:"win_rate"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client      *redis.Client
	recentLimit int64
}

// NewRedisStore 创建 Redis 存储，recentLimit <= 0 时使用默认值
func NewRedisStore(client *redis.Client, recentLimit int) *RedisStore {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &RedisStore{client: client, recentLimit: int64(recentLimit)}
}

// Ping 检查连接是否可用
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// RecordRound 保存对局，并更新所有参与者的战绩和排行榜
func (rs *RedisStore) RecordRound(ctx context.Context, rec *RoundRecord) error {
	if rec == nil {
		return nil
	}
	if rec.ID == "" {
		return errors.New("对局记录缺少 ID")
	}
	if rec.FinishedAt == 0 {
		rec.FinishedAt = time.Now().Unix()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化对局数据失败: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, roundKeyPrefix+rec.ID, data, 0)
	pipe.LPush(ctx, recentRoundsKey, rec.ID)
	pipe.LTrim(ctx, recentRoundsKey, 0, rs.recentLimit-1)

	for _, name := range rec.Players {
		key := playerStatsKey + name
		pipe.HIncrBy(ctx, key, "games", 1)
		if name == rec.Winner {
			pipe.HIncrBy(ctx, key, "wins", 1)
			pipe.ZIncrBy(ctx, leaderboardKey, 1, name)
		} else {
			// 保证没赢过的玩家也出现在排行榜里
			pipe.ZAddNX(ctx, leaderboardKey, redis.Z{Score: 0, Member: name})
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存对局 %s 失败: %w", rec.ID, err)
	}
	return nil
}

// LoadRound 读取对局，不存在时返回 nil
func (rs *RedisStore) LoadRound(ctx context.Context, id string) (*RoundRecord, error) {
	data, err := rs.client.Get(ctx, roundKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec RoundRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("反序列化对局数据失败: %w", err)
	}
	return &rec, nil
}

// RecentRounds 最近的对局，最新的在前
func (rs *RedisStore) RecentRounds(ctx context.Context, limit int) ([]*RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	ids, err := rs.client.LRange(ctx, recentRoundsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	rounds := make([]*RoundRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := rs.LoadRound(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			rounds = append(rounds, rec)
		}
	}
	return rounds, nil
}

// PlayerStats 获取玩家战绩，没有记录时返回 nil
func (rs *RedisStore) PlayerStats(ctx context.Context, name string) (*PlayerStats, error) {
	data, err := rs.client.HGetAll(ctx, playerStatsKey+name).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	stats := &PlayerStats{Name: name}
	stats.Games, _ = strconv.ParseInt(data["games"], 10, 64)
	stats.Wins, _ = strconv.ParseInt(data["wins"], 10, 64)
	stats.WinRate = winRate(stats.Wins, stats.Games)
	return stats, nil
}
