package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/game/rule"
)

// 界面模式
const (
	ModePlain = "plain"
	ModeTUI   = "tui"
)

// Config 游戏配置
type Config struct {
	Game    GameConfig    `yaml:"game"`
	UI      UIConfig      `yaml:"ui"`
	Redis   RedisConfig   `yaml:"redis"`
	Journal JournalConfig `yaml:"journal"`
	Remote  RemoteConfig  `yaml:"remote"`
}

// GameConfig 牌局配置
type GameConfig struct {
	HandSize   int      `yaml:"hand_size"`   // 每人手牌数
	MinPlayers int      `yaml:"min_players"` // 最少玩家数
	MaxPlayers int      `yaml:"max_players"` // 最多玩家数
	WinPolicy  string   `yaml:"win_policy"`  // two_runs 或 natural_run
	Seed       uint64   `yaml:"seed"`        // 0 表示随机
	Players    []string `yaml:"players"`     // 预设玩家昵称，为空时开局询问
}

// UIConfig 终端界面配置
type UIConfig struct {
	Mode  string `yaml:"mode"`  // plain 或 tui
	Color bool   `yaml:"color"` // 是否彩色显示
}

// RedisConfig Redis 配置，用于保存战绩
type RedisConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	RecentLimit int    `yaml:"recent_limit"` // 最近对局保留条数
}

// JournalConfig 牌局日志配置，path 为空时不记录
type JournalConfig struct {
	Path string `yaml:"path"`
}

// RemoteConfig 远程座位配置
type RemoteConfig struct {
	Listen      string   `yaml:"listen"`       // WebSocket 监听地址
	Seats       []string `yaml:"seats"`        // 通过网络加入的玩家昵称
	JoinTimeout int      `yaml:"join_timeout"` // 等待远程玩家加入（秒）
}

// JoinTimeoutDuration 返回等待远程玩家加入的时长
func (c *RemoteConfig) JoinTimeoutDuration() time.Duration {
	return time.Duration(c.JoinTimeout) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			HandSize:   10,
			MinPlayers: 2,
			MaxPlayers: 4,
			WinPolicy:  string(rule.PolicyTwoRuns),
		},
		UI: UIConfig{
			Mode:  ModePlain,
			Color: true,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			RecentLimit: 50,
		},
		Remote: RemoteConfig{
			Listen:      "127.0.0.1:1780",
			JoinTimeout: 120,
		},
	}
}

// applyDefaults 配置文件中显式写成零值的字段回退到默认值
func (c *Config) applyDefaults() {
	def := Default()
	if c.Game.HandSize == 0 {
		c.Game.HandSize = def.Game.HandSize
	}
	if c.Game.MinPlayers == 0 {
		c.Game.MinPlayers = def.Game.MinPlayers
	}
	if c.Game.MaxPlayers == 0 {
		c.Game.MaxPlayers = def.Game.MaxPlayers
	}
	if c.Game.WinPolicy == "" {
		c.Game.WinPolicy = def.Game.WinPolicy
	}
	if c.UI.Mode == "" {
		c.UI.Mode = def.UI.Mode
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
	if c.Redis.RecentLimit == 0 {
		c.Redis.RecentLimit = def.Redis.RecentLimit
	}
	if c.Remote.Listen == "" {
		c.Remote.Listen = def.Remote.Listen
	}
	if c.Remote.JoinTimeout == 0 {
		c.Remote.JoinTimeout = def.Remote.JoinTimeout
	}
}

// Validate 检查配置是否能开局
func (c *Config) Validate() error {
	var errs []error

	g := c.Game
	if g.MinPlayers < 1 {
		errs = append(errs, fmt.Errorf("game.min_players 必须至少为 1，当前为 %d", g.MinPlayers))
	}
	if g.MinPlayers > g.MaxPlayers {
		errs = append(errs, fmt.Errorf("game.min_players (%d) 不能大于 game.max_players (%d)", g.MinPlayers, g.MaxPlayers))
	}
	if g.HandSize < 1 {
		errs = append(errs, fmt.Errorf("game.hand_size 必须为正数，当前为 %d", g.HandSize))
	}
	// 发牌后还需要弃牌堆首张和万能牌
	if need := g.MaxPlayers*g.HandSize + 2; need > card.DeckSize {
		errs = append(errs, fmt.Errorf("%d 名玩家每人 %d 张牌需要 %d 张，牌堆只有 %d 张",
			g.MaxPlayers, g.HandSize, need, card.DeckSize))
	}
	if _, err := rule.ParseWinPolicy(g.WinPolicy); err != nil {
		errs = append(errs, fmt.Errorf("game.win_policy: %w", err))
	}
	if n := len(g.Players) + len(c.Remote.Seats); len(g.Players) > 0 && (n < g.MinPlayers || n > g.MaxPlayers) {
		errs = append(errs, fmt.Errorf("预设玩家共 %d 名，应在 %d 到 %d 之间", n, g.MinPlayers, g.MaxPlayers))
	}

	switch c.UI.Mode {
	case ModePlain, ModeTUI:
	default:
		errs = append(errs, fmt.Errorf("ui.mode 未知: %q", c.UI.Mode))
	}

	if c.Remote.JoinTimeout < 0 {
		errs = append(errs, fmt.Errorf("remote.join_timeout 不能为负数"))
	}

	return errors.Join(errs...)
}

// Policy 返回解析后的胡牌条件
func (c *Config) Policy() rule.WinPolicy {
	p, err := rule.ParseWinPolicy(c.Game.WinPolicy)
	if err != nil {
		return rule.PolicyTwoRuns
	}
	return p
}
