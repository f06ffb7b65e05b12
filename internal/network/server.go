package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/palemoky/rummy/internal/logger"
)

// Serve 在 addr 上监听，ctx 结束时关闭服务；返回实际监听地址
func Serve(ctx context.Context, addr string, h http.Handler) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError("seat server stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.LogInfo("seat server listening on ws://%s/seat", ln.Addr())
	return ln.Addr(), nil
}
