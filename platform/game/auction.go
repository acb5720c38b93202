package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

const (
	AuctionMinBid    = 10
	AuctionIncrement = 5
)

// Auction is a bidding round over a declined property. Every
// non-bankrupt player, the decliner included, may bid. Seq grows with
// every accepted bid so that a timer armed for an older window is
// recognizable as stale.
type Auction struct {
	Pos        int
	Bidders    []PlayerID
	Passed     map[PlayerID]bool
	HighBid    int
	HighBidder *PlayerID
	Seq        int
}

func (a *Auction) eligible(id PlayerID) bool {
	for _, b := range a.Bidders {
		if b == id {
			return true
		}
	}
	return false
}

func (a *Auction) activeBidders() []PlayerID {
	var out []PlayerID
	for _, b := range a.Bidders {
		if !a.Passed[b] {
			out = append(out, b)
		}
	}
	return out
}

func (s *State) startAuction(pos int) {
	a := &Auction{
		Pos:    pos,
		Passed: make(map[PlayerID]bool),
	}
	for _, p := range s.alive() {
		a.Bidders = append(a.Bidders, p.ID)
	}
	s.Auction = a
	s.resumePhase = s.Phase
	s.Phase = PhaseAuction
	s.emit(EvAuctionStart, s.auctionPayload())
}

func (s *State) auctionPayload() AuctionPayload {
	a := s.Auction
	return AuctionPayload{
		Pos:        a.Pos,
		Property:   board.ByPos(a.Pos).Name,
		HighBid:    a.HighBid,
		HighBidder: a.HighBidder,
		Active:     a.activeBidders(),
	}
}

func (s *State) handleBid(p *Player, amount int) error {
	a := s.Auction
	if !a.eligible(p.ID) {
		return errf("you are not part of this auction")
	}
	if a.Passed[p.ID] {
		return errf("you already passed")
	}
	floor := AuctionMinBid
	if a.HighBid > 0 && a.HighBid+AuctionIncrement > floor {
		floor = a.HighBid + AuctionIncrement
	}
	if amount < floor {
		return errf("bid at least $%d", floor)
	}
	if p.Cash < amount {
		return errf("you cannot cover a $%d bid", amount)
	}
	a.HighBid = amount
	id := p.ID
	a.HighBidder = &id
	a.Seq++
	s.logf("%s bids $%d for %s", p.Username, amount, board.ByPos(a.Pos).Name)
	s.emit(EvAuctionUpdate, s.auctionPayload())
	return nil
}

func (s *State) handlePassBid(p *Player) error {
	a := s.Auction
	if !a.eligible(p.ID) {
		return errf("you are not part of this auction")
	}
	if a.Passed[p.ID] {
		return errf("you already passed")
	}
	s.dropBidder(p.ID)
	return nil
}

// dropBidder marks a bidder inactive and settles the auction once at
// most one live bidder remains with nothing left to outbid.
func (s *State) dropBidder(id PlayerID) {
	a := s.Auction
	a.Passed[id] = true
	s.emit(EvAuctionUpdate, s.auctionPayload())

	active := a.activeBidders()
	switch {
	case len(active) == 0:
		s.settleAuction()
	case len(active) == 1 && a.HighBidder != nil && *a.HighBidder == active[0]:
		s.settleAuction()
	}
	// one active bidder without the high bid still has a chance to bid;
	// the bid window timer passes them if they stay silent
}

// handleAuctionTimeout fires when the bid window lapses: every active
// bidder except the current leader is passed.
func (s *State) handleAuctionTimeout(seq int) error {
	a := s.Auction
	if seq != a.Seq {
		return errf("stale auction timer")
	}
	for _, id := range a.activeBidders() {
		if a.HighBidder != nil && *a.HighBidder == id {
			continue
		}
		a.Passed[id] = true
	}
	s.emit(EvAuctionUpdate, s.auctionPayload())
	s.settleAuction()
	return nil
}

// settleAuction transfers the property to the high bidder and debits
// the winning bid in one step; with no bid the property stays with the
// bank.
func (s *State) settleAuction() {
	a := s.Auction
	t := board.ByPos(a.Pos)

	if a.HighBidder != nil {
		winner := s.player(*a.HighBidder)
		winner.Cash -= a.HighBid
		s.Bank.Cash += a.HighBid
		id := winner.ID
		s.Props[a.Pos].Owner = &id
		s.logf("%s wins the auction for %s at $%d", winner.Username, t.Name, a.HighBid)
	} else {
		s.logf("no bids for %s; it stays with the bank", t.Name)
	}
	s.emit(EvAuctionEnd, AuctionEndPayload{Pos: a.Pos, Winner: a.HighBidder, Price: a.HighBid})

	s.Auction = nil
	s.Phase = s.resumePhase
	s.afterAction(s.current())
}
