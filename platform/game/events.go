package game

import "fmt"

// Event is an outbound message produced by an engine operation. Target
// nil means broadcast to the room; otherwise it is delivered to that
// player's session only.
type Event struct {
	Name   string
	Target *PlayerID
	Data   interface{}
}

// Socket event names, in the house kebab-case style.
const (
	EvGameStart      = "game-start"
	EvGameEnd        = "game-end"
	EvTurnStart      = "turn-start"
	EvYourTurn       = "your-turn"
	EvDiceResult     = "dice-result"
	EvStateUpdate    = "state-update"
	EvEventLog       = "event-log"
	EvAuctionStart   = "auction-start"
	EvAuctionUpdate  = "auction-update"
	EvAuctionEnd     = "auction-end"
	EvTradeProposal  = "trade-proposal"
	EvTradeUpdate    = "trade-update"
	EvTradeEnd       = "trade-end"
	EvPlayerBankrupt = "player-bankrupt"
	EvCardDrawn      = "card-drawn"
)

type TurnStartPayload struct {
	PlayerID PlayerID `json:"player_id"`
	Turn     int      `json:"turn"`
}

type DiceResultPayload struct {
	PlayerID PlayerID `json:"player_id"`
	D1       int      `json:"d1"`
	D2       int      `json:"d2"`
	Pos      int      `json:"pos"`
}

type AuctionPayload struct {
	Pos        int        `json:"pos"`
	Property   string     `json:"property"`
	HighBid    int        `json:"high_bid"`
	HighBidder *PlayerID  `json:"high_bidder,omitempty"`
	Active     []PlayerID `json:"active"`
}

type AuctionEndPayload struct {
	Pos    int       `json:"pos"`
	Winner *PlayerID `json:"winner,omitempty"`
	Price  int       `json:"price"`
}

type TradePayload struct {
	Initiator PlayerID   `json:"initiator"`
	Receiver  PlayerID   `json:"receiver"`
	Offer     TradeOffer `json:"offer"`
	Ask       TradeOffer `json:"ask"`
}

type TradeEndPayload struct {
	Initiator PlayerID `json:"initiator"`
	Receiver  PlayerID `json:"receiver"`
	Outcome   string   `json:"outcome"` // completed, declined, cancelled, expired
}

type GameEndPayload struct {
	Winner PlayerID `json:"winner"`
}

type CardPayload struct {
	PlayerID PlayerID `json:"player_id"`
	Deck     string   `json:"deck"`
	Text     string   `json:"text"`
}

type BankruptPayload struct {
	PlayerID PlayerID  `json:"player_id"`
	Creditor *PlayerID `json:"creditor,omitempty"`
}

func (s *State) emit(name string, data interface{}) {
	s.events = append(s.events, Event{Name: name, Data: data})
}

func (s *State) emitTo(target PlayerID, name string, data interface{}) {
	t := target
	s.events = append(s.events, Event{Name: name, Target: &t, Data: data})
}

func (s *State) logf(format string, args ...interface{}) {
	s.emit(EvEventLog, fmt.Sprintf(format, args...))
}
