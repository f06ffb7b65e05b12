package card

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

const (
	Clubs    Suit = iota // 梅花
	Diamonds             // 方块
	Hearts               // 红心
	Spades               // 黑桃
	NoSuit               // 王牌没有花色
)

// suitNames 花色名称映射表
var suitNames = map[Suit]string{
	Clubs:    "Clubs",
	Diamonds: "Diamonds",
	Hearts:   "Hearts",
	Spades:   "Spades",
	NoSuit:   "",
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
	NoSuit:   "",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return ""
}

// Symbol 返回花色符号
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// IsRed 红心和方块为红色
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Joker
)

// 顺子不能首尾相接，A 只能当 1
const (
	LowestRank  = Ace
	HighestRank = King
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Ace:   "Ace",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Joker: "Joker",
}

// rankShort 牌面值简写，用于紧凑显示
var rankShort = map[Rank]string{
	Ace:   "A",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Joker: "JK",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Short 返回点数简写
func (r Rank) Short() string {
	if name, ok := rankShort[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// New 创建一张牌，王牌的花色固定为 NoSuit
func New(s Suit, r Rank) Card {
	if r == Joker {
		s = NoSuit
	}
	return Card{Suit: s, Rank: r}
}

// NewJoker 创建王牌
func NewJoker() Card {
	return Card{Suit: NoSuit, Rank: Joker}
}

// IsJoker 是否是王牌
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

// String 王牌只显示 Joker，其余显示 "<点数> of <花色>"
func (c Card) String() string {
	if c.IsJoker() {
		return Joker.String()
	}
	return c.Rank.String() + " of " + c.Suit.String()
}

// Short 紧凑显示，例如 "10♥"
func (c Card) Short() string {
	if c.IsJoker() {
		return Joker.Short()
	}
	return c.Rank.Short() + c.Suit.Symbol()
}

// Compare 按 (花色, 点数) 的全序比较
func Compare(a, b Card) int {
	if c := cmp.Compare(a.Suit, b.Suit); c != 0 {
		return c
	}
	return cmp.Compare(a.Rank, b.Rank)
}

// IsWild 判断是否为万能牌：王牌，或点数等于本局翻出的万能点数
func IsWild(c Card, wild Rank) bool {
	return c.Rank == Joker || c.Rank == wild
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[string]Rank{
	"A":  Ace,
	"2":  Two,
	"3":  Three,
	"4":  Four,
	"5":  Five,
	"6":  Six,
	"7":  Seven,
	"8":  Eight,
	"9":  Nine,
	"10": Ten,
	"T":  Ten,
	"J":  Jack,
	"Q":  Queen,
	"K":  King,
	"JK": Joker,
}

var charToSuit = map[string]Suit{
	"C": Clubs,
	"D": Diamonds,
	"H": Hearts,
	"S": Spades,
	"♣": Clubs,
	"♦": Diamonds,
	"♥": Hearts,
	"♠": Spades,
}

// Parse 解析简写形式的牌，例如 "5H"、"10♠"、"JK"
func Parse(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "JK" || s == "JOKER" {
		return NewJoker(), nil
	}
	for sym, suit := range charToSuit {
		rankPart, ok := strings.CutSuffix(s, sym)
		if !ok {
			continue
		}
		rank, ok := charToRank[rankPart]
		if !ok || rank == Joker {
			return Card{}, fmt.Errorf("无法识别的点数: %q", rankPart)
		}
		return New(suit, rank), nil
	}
	return Card{}, fmt.Errorf("无法识别的牌: %q", s)
}

// MustParse 解析失败时 panic，仅用于测试和常量
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Deck 定义一副牌，末尾为牌顶
type Deck []Card

// DeckSize 52 张标准牌加 1 张王牌
const DeckSize = 53

// NewDeck 创建一副 53 张的牌
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for s := Clubs; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return append(deck, NewJoker())
}

// Shuffle 洗牌，rng 为空时使用全局随机源
func (d Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) {
		d[i], d[j] = d[j], d[i]
	}
	if rng == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	rng.Shuffle(len(d), swap)
}
