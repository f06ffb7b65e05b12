// Package convert 在牌和传输格式之间转换
package convert

import (
	"fmt"

	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Suit: int(c.Suit),
		Rank: int(c.Rank),
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 转换为 card.Card，拒绝不存在的牌
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	rank := card.Rank(info.Rank)
	if rank == card.Joker {
		return card.NewJoker(), nil
	}
	suit := card.Suit(info.Suit)
	if rank < card.LowestRank || rank > card.HighestRank || suit < card.Clubs || suit > card.Spades {
		return card.Card{}, fmt.Errorf("无效的牌: suit=%d rank=%d", info.Suit, info.Rank)
	}
	return card.New(suit, rank), nil
}

// InfosToCards 将 []protocol.CardInfo 转换为 []card.Card
func InfosToCards(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := InfoToCard(info)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
