package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/rummy/internal/app"
	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/config"
	"github.com/palemoky/rummy/internal/journal"
	"github.com/palemoky/rummy/internal/logger"
	"github.com/palemoky/rummy/internal/network"
	"github.com/palemoky/rummy/internal/storage"
	"github.com/palemoky/rummy/internal/ui/prompt"
	"github.com/palemoky/rummy/internal/ui/view"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	players := flag.String("players", "", "以逗号分隔的玩家昵称，覆盖配置文件")
	leaderboard := flag.Int("leaderboard", 0, "只显示排行榜前 N 名")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	// 加载配置
	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	case err != nil:
		fmt.Fprintf(os.Stderr, "invalid config %s:\n%v\n", *configPath, err)
		return 1
	}
	if *players != "" {
		cfg.Game.Players = splitNames(*players)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console := view.NewConsole(os.Stdout, cfg.UI.Color)
	deps := app.Deps{Console: console}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()

		store := storage.NewRedisStore(client, cfg.Redis.RecentLimit)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := store.Ping(pingCtx)
		cancel()
		if err != nil {
			// Redis 不可用时仍然可以游戏，只是不保存战绩
			logger.LogError("redis %s unavailable: %v", cfg.Redis.Addr, err)
			console.Message(fmt.Sprintf("Redis at %s is unavailable, results will not be saved.", cfg.Redis.Addr))
		} else {
			deps.Store = store
		}
	}

	a := app.New(cfg, deps)
	if *leaderboard > 0 {
		if err := a.ShowLeaderboard(ctx, *leaderboard); err != nil {
			console.Error(err)
			return 1
		}
		return 0
	}

	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			console.Error(fmt.Errorf("open journal: %w", err))
			return 1
		}
		defer func() { _ = j.Close() }()
		deps.Recorder = j
	}

	if len(cfg.Remote.Seats) > 0 {
		lobby := network.NewLobby(cfg.Remote.Seats)
		defer lobby.Close()
		addr, err := network.Serve(ctx, cfg.Remote.Listen, lobby.Handler())
		if err != nil {
			console.Error(fmt.Errorf("listen on %s: %w", cfg.Remote.Listen, err))
			return 1
		}
		console.Message(fmt.Sprintf("Remote players can join with: rummy-seat -server ws://%s -name <name>", addr))
		deps.Lobby = lobby
	}

	var reader prompt.LineReader = prompt.NewPlain(os.Stdin, os.Stdout)
	if cfg.UI.Mode == config.ModeTUI {
		reader = prompt.NewTea(os.Stdin, os.Stdout)
	}
	deps.Input = prompt.NewConsole(reader, console.Message)

	a = app.New(cfg, deps)
	if _, err := a.PlayRound(ctx); err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeSetup {
			console.Error(err)
			return 1
		}
		if errors.Is(err, context.Canceled) {
			console.Message("Game interrupted.")
			return 1
		}
		logger.LogError("round ended with error: %v", err)
		console.Error(err)
		return 1
	}
	return 0
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
