package game

import (
	"github.com/google/uuid"

	"github.com/palemoky/rummy/internal/game/card"
)

// Player 玩家，手牌只由自己的回合修改
type Player struct {
	ID   string
	Name string
	Hand card.Hand

	In  Input
	Out Output
}

// NewPlayer 创建玩家
func NewPlayer(name string, in Input, out Output) *Player {
	return &Player{
		ID:   uuid.NewString(),
		Name: name,
		In:   in,
		Out:  out,
	}
}
