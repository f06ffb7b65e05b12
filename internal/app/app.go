// Package app 把配置、界面、远程座位和存储组装成一局游戏
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/config"
	"github.com/palemoky/rummy/internal/game"
	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/game/rule"
	"github.com/palemoky/rummy/internal/logger"
	"github.com/palemoky/rummy/internal/network"
	"github.com/palemoky/rummy/internal/storage"
	"github.com/palemoky/rummy/internal/ui/prompt"
	"github.com/palemoky/rummy/internal/ui/view"
)

var errSetupTimeout = apperrors.New(apperrors.ErrCodeSetup, "remote players did not join in time")

// ResultStore 对局结果存储
type ResultStore interface {
	RecordRound(ctx context.Context, rec *storage.RoundRecord) error
	Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
}

// Deps 外部依赖，Store、Recorder 和 Lobby 可为空
type Deps struct {
	Input    game.Input
	Console  *view.Console
	Store    ResultStore
	Recorder game.Recorder
	Lobby    *network.Lobby
}

// App 一次运行
type App struct {
	cfg  *config.Config
	deps Deps
}

// New 创建 App
func New(cfg *config.Config, deps Deps) *App {
	return &App{cfg: cfg, deps: deps}
}

// wildSetter 可以高亮万能牌的输出
type wildSetter interface {
	SetWild(r card.Rank)
}

// PlayRound 开局并一直进行到有人胡牌
func (a *App) PlayRound(ctx context.Context) (*game.Result, error) {
	seats, err := a.waitForSeats(ctx)
	if err != nil {
		return nil, err
	}

	local, err := a.localNames(ctx, len(seats))
	if err != nil {
		return nil, err
	}

	console := a.deps.Console
	players := make([]*game.Player, 0, len(local)+len(seats))
	observers := []game.Output{console}
	for _, name := range local {
		players = append(players, game.NewPlayer(name, a.deps.Input, console))
	}
	for _, name := range a.cfg.Remote.Seats {
		seat := seats[name]
		players = append(players, game.NewPlayer(name, prompt.NewConsole(seat, seat.Message), seat))
		observers = append(observers, seat)
	}

	policy := a.cfg.Policy()
	round, err := game.NewRound(players, game.Options{
		HandSize:   a.cfg.Game.HandSize,
		MinPlayers: a.cfg.Game.MinPlayers,
		MaxPlayers: a.cfg.Game.MaxPlayers,
		Policy:     policy,
		Rand:       a.rand(),
		Observers:  observers,
		Recorder:   a.deps.Recorder,
	})
	if err != nil {
		a.finishSeats(seats, "", err.Error())
		return nil, err
	}
	logger.LogInfo("round %s started: players=%v wild=%s policy=%s", round.ID, names(round.Players()), round.WildCard(), policy)

	rules := view.RenderGameRules(policy, a.cfg.UI.Color)
	for _, o := range observers {
		if ws, ok := o.(wildSetter); ok {
			ws.SetWild(round.WildCard().Rank)
		}
	}
	console.Print(rules)
	for _, s := range seats {
		s.Message(rules)
	}
	round.ShowInitialHands()

	res, err := round.Run(ctx)
	if err != nil {
		a.finishSeats(seats, "", "The round was abandoned.")
		return nil, err
	}

	text := fmt.Sprintf("%s won the round in %d turns!", res.Winner.Name, res.Turns)
	console.Message(text)
	a.finishSeats(seats, res.Winner.Name, text)
	logger.LogInfo("round %s finished: winner=%s turns=%d duration=%s", res.RoundID, res.Winner.Name, res.Turns, res.Duration)

	a.saveResult(ctx, res, policy)
	return res, nil
}

// waitForSeats 等待远程玩家入座，超时返回错误
func (a *App) waitForSeats(ctx context.Context) (map[string]*network.Seat, error) {
	if len(a.cfg.Remote.Seats) == 0 {
		return nil, nil
	}
	if a.deps.Lobby == nil {
		return nil, fmt.Errorf("%w: remote seats %v configured without a lobby", apperrors.ErrSetup, a.cfg.Remote.Seats)
	}
	a.deps.Console.Message(fmt.Sprintf("Waiting for remote players to join: %v", a.cfg.Remote.Seats))

	waitCtx := ctx
	if d := a.cfg.Remote.JoinTimeoutDuration(); d > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	seats, err := a.deps.Lobby.Wait(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", errSetupTimeout, err)
		}
		return nil, err
	}
	return seats, nil
}

// localNames 本地玩家昵称：优先使用配置，否则询问
func (a *App) localNames(ctx context.Context, remote int) ([]string, error) {
	if len(a.cfg.Game.Players) > 0 {
		return a.cfg.Game.Players, nil
	}
	minLocal := max(a.cfg.Game.MinPlayers-remote, 1)
	maxLocal := a.cfg.Game.MaxPlayers - remote
	return game.PromptNames(ctx, a.deps.Input, minLocal, maxLocal)
}

func (a *App) rand() *rand.Rand {
	seed := a.cfg.Game.Seed
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (a *App) finishSeats(seats map[string]*network.Seat, winner, text string) {
	for _, s := range seats {
		s.Finish(winner, text)
	}
}

// saveResult 保存战绩，失败只记录日志
func (a *App) saveResult(ctx context.Context, res *game.Result, policy rule.WinPolicy) {
	if a.deps.Store == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := a.deps.Store.RecordRound(saveCtx, RecordFromResult(res, policy)); err != nil {
		logger.LogError("round %s: saving result failed: %v", res.RoundID, err)
		a.deps.Console.Error(fmt.Errorf("could not save the result: %w", err))
	}
}

// ShowLeaderboard 打印排行榜
func (a *App) ShowLeaderboard(ctx context.Context, limit int) error {
	if a.deps.Store == nil {
		return errors.New("leaderboard needs redis.enabled in the config")
	}
	entries, err := a.deps.Store.Leaderboard(ctx, limit)
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}
	a.deps.Console.Print(view.RenderLeaderboard(entries, a.cfg.UI.Color))
	return nil
}

// RecordFromResult 把对局结果转成存储格式
func RecordFromResult(res *game.Result, policy rule.WinPolicy) *storage.RoundRecord {
	rec := &storage.RoundRecord{
		ID:         res.RoundID,
		Winner:     res.Winner.Name,
		Players:    res.Players,
		WildCard:   res.WildCard.String(),
		Turns:      res.Turns,
		Policy:     string(policy),
		DurationMs: res.Duration.Milliseconds(),
	}
	for _, g := range res.Groups {
		cards := make([]string, len(g.Cards))
		for i, c := range g.Cards {
			cards[i] = c.String()
		}
		rec.Groups = append(rec.Groups, storage.GroupRecord{Type: g.Type.String(), Cards: cards, Natural: g.Natural})
	}
	return rec
}

func names(players []*game.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
