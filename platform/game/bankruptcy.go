package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

// liquidationValue is the most a player could raise right now: cash,
// half the construction cost of every building, and the mortgage value
// of every unmortgaged holding.
func (s *State) liquidationValue(p *Player) int {
	total := p.Cash
	for _, pos := range s.ownedBy(p.ID) {
		t := board.ByPos(pos)
		prop := s.Props[pos]
		if prop.Hotel {
			total += 5 * t.HouseCost / 2
		} else {
			total += prop.Houses * t.HouseCost / 2
		}
		if !prop.Mortgaged {
			total += t.Mortgage
		}
	}
	return total
}

// charge settles a debt. If cash falls short but the player can raise
// the amount, buildings are sold and then properties mortgaged, in that
// fixed order, until the debt is covered. If even full liquidation
// cannot cover it, the player goes bankrupt to the creditor (nil =
// bank).
func (s *State) charge(p *Player, amount int, creditor *Player) {
	if p.Cash < amount && s.liquidationValue(p) >= amount {
		s.raiseFunds(p, amount)
	}
	if p.Cash >= amount {
		p.Cash -= amount
		if creditor != nil {
			creditor.Cash += amount
		} else {
			s.Bank.Cash += amount
		}
		return
	}
	s.logf("%s cannot raise $%d", p.Username, amount)
	s.declareBankruptcy(p, creditor)
}

// raiseFunds liquidates until cash covers the target: every building
// first (tallest street of a group goes first, keeping the teardown
// even), then mortgages in board order.
func (s *State) raiseFunds(p *Player, target int) {
	for p.Cash < target {
		if !s.sellTallestBuilding(p) {
			break
		}
	}
	for p.Cash < target {
		if !s.mortgageNext(p) {
			break
		}
	}
}

func (s *State) sellTallestBuilding(p *Player) bool {
	best := -1
	bestLevel := 0
	for _, pos := range s.ownedBy(p.ID) {
		if board.ByPos(pos).Kind != board.KindStreet {
			continue
		}
		if lv := s.level(pos); lv > bestLevel {
			best, bestLevel = pos, lv
		}
	}
	if best < 0 {
		return false
	}
	if s.Props[best].Hotel && s.Bank.Houses < 4 {
		// cannot break the hotel into houses; tear it down outright
		t := board.ByPos(best)
		prop := s.Props[best]
		prop.Hotel = false
		s.Bank.Hotels++
		refund := 5 * t.HouseCost / 2
		p.Cash += refund
		s.Bank.Cash -= refund
		s.logf("%s tears down the hotel on %s for $%d", p.Username, t.Name, refund)
		return true
	}
	return s.handleSellBuilding(p, best) == nil
}

func (s *State) mortgageNext(p *Player) bool {
	for _, pos := range s.ownedBy(p.ID) {
		if !s.Props[pos].Mortgaged {
			if s.handleMortgage(p, pos) == nil {
				return true
			}
		}
	}
	return false
}

// declareBankruptcy liquidates every building at half cost, returns the
// supply to the bank, and hands the remaining estate over: a private
// creditor receives cash, properties with mortgage flags intact, and
// jail cards; the bank wipes mortgages and returns properties to the
// unowned pool.
func (s *State) declareBankruptcy(p *Player, creditor *Player) {
	for _, pos := range s.ownedBy(p.ID) {
		t := board.ByPos(pos)
		prop := s.Props[pos]
		if prop.Hotel {
			prop.Hotel = false
			s.Bank.Hotels++
			refund := 5 * t.HouseCost / 2
			p.Cash += refund
			s.Bank.Cash -= refund
		}
		if prop.Houses > 0 {
			s.Bank.Houses += prop.Houses
			refund := prop.Houses * t.HouseCost / 2
			prop.Houses = 0
			p.Cash += refund
			s.Bank.Cash -= refund
		}
	}

	if creditor != nil {
		creditor.Cash += p.Cash
		creditor.JailCards += p.JailCards
		for _, pos := range s.ownedBy(p.ID) {
			id := creditor.ID
			s.Props[pos].Owner = &id
		}
		s.logf("%s is bankrupt; the estate goes to %s", p.Username, creditor.Username)
	} else {
		s.Bank.Cash += p.Cash
		for _, pos := range s.ownedBy(p.ID) {
			prop := s.Props[pos]
			prop.Owner = nil
			prop.Mortgaged = false
		}
		s.logf("%s is bankrupt; the estate returns to the bank", p.Username)
	}
	p.Cash = 0
	p.JailCards = 0
	p.Bankrupt = true
	p.InJail = false

	var cid *PlayerID
	if creditor != nil {
		id := creditor.ID
		cid = &id
	}
	s.emit(EvPlayerBankrupt, BankruptPayload{PlayerID: p.ID, Creditor: cid})
	s.finishIfDecided()
}
