package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/palemoky/rummy/internal/logger"
	"github.com/palemoky/rummy/internal/network"
	"github.com/palemoky/rummy/internal/ui/prompt"
	"github.com/palemoky/rummy/internal/ui/view"
)

func main() {
	serverURL := flag.String("server", "ws://127.0.0.1:1780", "牌桌地址")
	name := flag.String("name", "", "预留座位的玩家昵称")
	color := flag.Bool("color", true, "彩色显示")
	tui := flag.Bool("tui", false, "使用交互式输入框")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: rummy-seat -server ws://host:port -name <name>")
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := network.Dial(ctx, *serverURL, *name)
	if err != nil {
		log.Fatalf("连接牌桌失败: %v", err)
	}
	defer func() { _ = client.Close() }()

	var in prompt.LineReader = prompt.NewPlain(os.Stdin, os.Stdout)
	if *tui {
		in = prompt.NewTea(os.Stdin, os.Stdout)
	}
	out := view.NewConsole(os.Stdout, *color)

	if err := client.Run(ctx, in, out); err != nil {
		logger.LogError("seat %s: %v", *name, err)
		log.Fatalf("对局中断: %v", err)
	}
}
