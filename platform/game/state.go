package game

import (
	"math/rand"

	"github.com/tycoon-games/tycoon-backend/platform/board"
)

type PlayerID string

const (
	StartingCash = 1500
	GoSalary     = 200
	JailFine     = 50

	BankHouses = 32
	BankHotels = 12
)

// Player never leaves the roster; bankruptcy only marks it so that turn
// order indices stay stable.
type Player struct {
	ID        PlayerID `json:"id"`
	Username  string   `json:"username"`
	Cash      int      `json:"cash"`
	Pos       int      `json:"pos"`
	InJail    bool     `json:"in_jail"`
	JailTurns int      `json:"jail_turns"`
	JailCards int      `json:"jail_cards"`
	Bankrupt  bool     `json:"bankrupt"`

	doubles    bool // last roll was doubles
	doublesRun int  // consecutive doubles this turn
}

// Property is the mutable half of a tile; the static half lives in the
// board package. Owner nil means the bank holds it.
type Property struct {
	Pos       int       `json:"pos"`
	Owner     *PlayerID `json:"owner,omitempty"`
	Houses    int       `json:"houses"`
	Hotel     bool      `json:"hotel"`
	Mortgaged bool      `json:"mortgaged"`
}

// Bank tracks the finite building supply. Supply never goes negative;
// every construction operation keeps housesInPlay+Houses == 32 and
// hotelsInPlay+Hotels == 12.
type Bank struct {
	Houses int `json:"houses"`
	Hotels int `json:"hotels"`
	Cash   int `json:"cash"`
}

type dice struct {
	rng *rand.Rand
	d1  int
	d2  int
}

func (d *dice) roll() (int, int) {
	d.d1 = d.rng.Intn(6) + 1
	d.d2 = d.rng.Intn(6) + 1
	return d.d1, d.d2
}

func (d *dice) total() int {
	return d.d1 + d.d2
}

// State is the aggregate root for one room. It is mutated only through
// Apply, which the room goroutine calls one command at a time.
type State struct {
	Players []*Player
	Current int
	Phase   Phase
	Turn    int
	Props   map[int]*Property
	Bank    Bank
	Auction *Auction
	Trade   *Trade
	Winner  *PlayerID

	// PendingBuy holds the tile awaiting the current player's buy/decline
	// decision, nil otherwise.
	PendingBuy *int

	dice        dice
	extraRoll   bool  // doubles grant another roll once PostRoll resolves
	resumePhase Phase // phase to restore after an auction or trade
	chance      *deck
	chest       *deck

	events []Event
}

// New seats the given players in order and deals starting cash. The
// seed parameterizes dice and deck shuffles so tests can be
// deterministic.
func New(players []Player, seed int64) *State {
	rng := rand.New(rand.NewSource(seed))
	s := &State{
		Props: make(map[int]*Property),
		Bank:  Bank{Houses: BankHouses, Hotels: BankHotels, Cash: 20580},
		Phase: PhaseTurnStart,
		dice:  dice{rng: rng},
	}
	for i := range players {
		p := players[i]
		p.Cash = StartingCash
		p.Pos = board.GoPos
		s.Players = append(s.Players, &p)
	}
	for _, t := range board.Layout() {
		if t.Ownable() {
			s.Props[t.Pos] = &Property{Pos: t.Pos}
		}
	}
	s.chance = newChanceDeck(rng)
	s.chest = newChestDeck(rng)
	return s
}

// Begin starts play: announces the game and opens the first turn.
func (s *State) Begin() []Event {
	s.events = nil
	s.emit(EvGameStart, s.Snapshot())
	s.beginTurn()
	s.pushState()
	return s.drain()
}

func (s *State) drain() []Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *State) player(id PlayerID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *State) current() *Player {
	return s.Players[s.Current]
}

func (s *State) alive() []*Player {
	var out []*Player
	for _, p := range s.Players {
		if !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// ownedBy lists positions of properties held by the player.
func (s *State) ownedBy(id PlayerID) []int {
	var out []int
	for _, t := range board.Layout() {
		if prop, ok := s.Props[t.Pos]; ok && prop.Owner != nil && *prop.Owner == id {
			out = append(out, t.Pos)
		}
	}
	return out
}

// ownsGroup reports whether the player holds every street in the group.
func (s *State) ownsGroup(id PlayerID, group string) bool {
	for _, pos := range board.Group(group) {
		prop := s.Props[pos]
		if prop.Owner == nil || *prop.Owner != id {
			return false
		}
	}
	return true
}

func (s *State) countKind(id PlayerID, positions []int) int {
	n := 0
	for _, pos := range positions {
		prop := s.Props[pos]
		if prop.Owner != nil && *prop.Owner == id {
			n++
		}
	}
	return n
}

// Apply executes one command on behalf of actor. It either mutates
// state and returns the resulting events, or returns an error and
// leaves state untouched. Retrying an invalid command yields the same
// rejection.
func (s *State) Apply(actor PlayerID, c Command) ([]Event, error) {
	s.events = nil

	if c.Kind == cmdSnapshot {
		return []Event{{Name: EvStateUpdate, Data: s.Snapshot()}}, nil
	}
	if s.Phase == PhaseGameOver {
		return nil, errf("the game is over")
	}
	allowed, ok := legalActions[s.Phase]
	if !ok || !allowed[c.Kind] {
		return nil, errf("%s is not legal during %s", c.Kind, s.Phase)
	}

	switch c.Kind {
	case CmdBuild, CmdSellBuilding, CmdMortgage, CmdUnmortgage:
		if c.Pos < 0 || c.Pos >= board.Size {
			return nil, errf("position %d is off the board", c.Pos)
		}
	}

	var p *Player
	if c.Kind != cmdAuctionTimeout && c.Kind != cmdTradeTimeout {
		p = s.player(actor)
		if p == nil {
			return nil, errf("unknown player")
		}
		if p.Bankrupt && c.Kind != CmdResign {
			return nil, errf("you are bankrupt")
		}
		if !anyActor[c.Kind] && s.current().ID != actor {
			return nil, errf("not your turn")
		}
	}

	var err error
	switch c.Kind {
	case CmdRoll:
		err = s.handleRoll(p)
	case CmdBuy:
		err = s.handleBuy(p)
	case CmdDeclineBuy:
		err = s.handleDeclineBuy(p)
	case CmdBid:
		err = s.handleBid(p, c.Amount)
	case CmdPassBid:
		err = s.handlePassBid(p)
	case cmdAuctionTimeout:
		err = s.handleAuctionTimeout(c.seq)
	case CmdProposeTrade:
		err = s.handleProposeTrade(p, c.Receiver, c.Offer, c.Ask)
	case CmdUpdateTrade:
		err = s.handleUpdateTrade(p, c.Offer, c.Ask)
	case CmdAcceptTrade:
		err = s.handleAcceptTrade(p)
	case CmdDeclineTrade:
		err = s.handleDeclineTrade(p)
	case CmdCancelTrade:
		err = s.handleCancelTrade(p)
	case cmdTradeTimeout:
		err = s.handleTradeTimeout(c.seq)
	case CmdBuild:
		err = s.handleBuild(p, c.Pos, c.Hotel)
	case CmdSellBuilding:
		err = s.handleSellBuilding(p, c.Pos)
	case CmdMortgage:
		err = s.handleMortgage(p, c.Pos)
	case CmdUnmortgage:
		err = s.handleUnmortgage(p, c.Pos)
	case CmdJailPayFine:
		err = s.handleJailPayFine(p)
	case CmdJailUseCard:
		err = s.handleJailUseCard(p)
	case CmdEndTurn:
		err = s.handleEndTurn(p)
	case CmdResign:
		err = s.handleResign(p)
	default:
		err = errf("unknown command")
	}
	if err != nil {
		s.events = nil
		return nil, err
	}

	s.pushState()
	return s.drain(), nil
}

func (s *State) pushState() {
	s.emit(EvStateUpdate, s.Snapshot())
}

// Snapshot types: what state-update carries over the wire.

type PlayerSnapshot struct {
	ID        PlayerID `json:"id"`
	Username  string   `json:"username"`
	Cash      int      `json:"cash"`
	Pos       int      `json:"pos"`
	InJail    bool     `json:"in_jail"`
	JailCards int      `json:"jail_cards"`
	Bankrupt  bool     `json:"bankrupt"`
}

type Snapshot struct {
	Players    []PlayerSnapshot `json:"players"`
	Current    PlayerID         `json:"current"`
	Phase      string           `json:"phase"`
	Turn       int              `json:"turn"`
	Props      []Property       `json:"properties"`
	Bank       Bank             `json:"bank"`
	PendingBuy *int             `json:"pending_buy,omitempty"`
	Winner     *PlayerID        `json:"winner,omitempty"`

	// live negotiation sub-state, so a reconnect mid-auction or
	// mid-trade can render the table
	Auction *AuctionPayload `json:"auction,omitempty"`
	Trade   *TradePayload   `json:"trade,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Current:    s.current().ID,
		Phase:      s.Phase.String(),
		Turn:       s.Turn,
		Bank:       s.Bank,
		PendingBuy: s.PendingBuy,
		Winner:     s.Winner,
	}
	for _, p := range s.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:        p.ID,
			Username:  p.Username,
			Cash:      p.Cash,
			Pos:       p.Pos,
			InJail:    p.InJail,
			JailCards: p.JailCards,
			Bankrupt:  p.Bankrupt,
		})
	}
	for _, t := range board.Layout() {
		if prop, ok := s.Props[t.Pos]; ok {
			snap.Props = append(snap.Props, *prop)
		}
	}
	if s.Auction != nil {
		a := s.auctionPayload()
		snap.Auction = &a
	}
	if tr := s.Trade; tr != nil {
		snap.Trade = &TradePayload{
			Initiator: tr.Initiator,
			Receiver:  tr.Receiver,
			Offer:     tr.Offer,
			Ask:       tr.Ask,
		}
	}
	return snap
}
