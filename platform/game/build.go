package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

// level is the build height of a street for even-build math: houses, or
// 5 for a hotel.
func (s *State) level(pos int) int {
	prop := s.Props[pos]
	if prop.Hotel {
		return 5
	}
	return prop.Houses
}

func (s *State) handleBuild(p *Player, pos int, hotel bool) error {
	t := board.ByPos(pos)
	if t.Kind != board.KindStreet {
		return errf("%s cannot be built on", t.Name)
	}
	prop := s.Props[pos]
	if prop.Owner == nil || *prop.Owner != p.ID {
		return errf("you do not own %s", t.Name)
	}
	if !s.ownsGroup(p.ID, t.Group) {
		return errf("you need the complete %s group to build", t.Group)
	}
	for _, gp := range board.Group(t.Group) {
		if s.Props[gp].Mortgaged {
			return errf("%s is mortgaged; lift it before building in the group", board.ByPos(gp).Name)
		}
	}
	if p.Cash < t.HouseCost {
		return errf("building on %s costs $%d", t.Name, t.HouseCost)
	}

	if hotel {
		return s.buildHotel(p, t, prop)
	}
	return s.buildHouse(p, t, prop)
}

func (s *State) buildHouse(p *Player, t board.Tile, prop *Property) error {
	if prop.Hotel {
		return errf("%s already has a hotel", t.Name)
	}
	if prop.Houses >= 4 {
		return errf("%s already has four houses; build a hotel", t.Name)
	}
	if s.Bank.Houses < 1 {
		return errf("the bank is out of houses")
	}
	// even build: after this house no sibling may trail by more than one
	for _, gp := range board.Group(t.Group) {
		if gp != t.Pos && s.level(gp) < prop.Houses {
			return errf("build evenly: %s has fewer houses", board.ByPos(gp).Name)
		}
	}

	p.Cash -= t.HouseCost
	s.Bank.Cash += t.HouseCost
	s.Bank.Houses--
	prop.Houses++
	s.logf("%s builds a house on %s (%d)", p.Username, t.Name, prop.Houses)
	return nil
}

// buildHotel swaps four houses for a hotel: the houses go back to the
// bank supply and one hotel comes out, in one step.
func (s *State) buildHotel(p *Player, t board.Tile, prop *Property) error {
	if prop.Hotel {
		return errf("%s already has a hotel", t.Name)
	}
	if prop.Houses != 4 {
		return errf("a hotel needs four houses on %s first", t.Name)
	}
	if s.Bank.Hotels < 1 {
		return errf("the bank is out of hotels")
	}
	for _, gp := range board.Group(t.Group) {
		if gp != t.Pos && s.level(gp) < 4 {
			return errf("every %s street needs four houses before a hotel", t.Group)
		}
	}

	p.Cash -= t.HouseCost
	s.Bank.Cash += t.HouseCost
	prop.Houses = 0
	prop.Hotel = true
	s.Bank.Houses += 4
	s.Bank.Hotels--
	s.logf("%s builds a hotel on %s", p.Username, t.Name)
	return nil
}

func (s *State) handleSellBuilding(p *Player, pos int) error {
	t := board.ByPos(pos)
	if t.Kind != board.KindStreet {
		return errf("%s has no buildings", t.Name)
	}
	prop := s.Props[pos]
	if prop.Owner == nil || *prop.Owner != p.ID {
		return errf("you do not own %s", t.Name)
	}
	if prop.Hotel {
		return s.sellHotel(p, t, prop)
	}
	if prop.Houses == 0 {
		return errf("%s has no buildings", t.Name)
	}
	// mirror of even build: only the tallest street in the group may shed
	for _, gp := range board.Group(t.Group) {
		if gp != pos && s.level(gp) > prop.Houses {
			return errf("sell evenly: %s has more houses", board.ByPos(gp).Name)
		}
	}
	prop.Houses--
	s.Bank.Houses++
	refund := t.HouseCost / 2
	p.Cash += refund
	s.Bank.Cash -= refund
	s.logf("%s sells a house on %s for $%d", p.Username, t.Name, refund)
	return nil
}

func (s *State) sellHotel(p *Player, t board.Tile, prop *Property) error {
	if s.Bank.Houses < 4 {
		return errf("the bank cannot supply four houses to break the hotel")
	}
	prop.Hotel = false
	prop.Houses = 4
	s.Bank.Hotels++
	s.Bank.Houses -= 4
	refund := t.HouseCost / 2
	p.Cash += refund
	s.Bank.Cash -= refund
	s.logf("%s sells the hotel on %s for $%d", p.Username, t.Name, refund)
	return nil
}

func (s *State) handleMortgage(p *Player, pos int) error {
	t := board.ByPos(pos)
	if !t.Ownable() {
		return errf("%s cannot be mortgaged", t.Name)
	}
	prop := s.Props[pos]
	if prop.Owner == nil || *prop.Owner != p.ID {
		return errf("you do not own %s", t.Name)
	}
	if prop.Mortgaged {
		return errf("%s is already mortgaged", t.Name)
	}
	if t.Kind == board.KindStreet {
		for _, gp := range board.Group(t.Group) {
			if s.level(gp) > 0 {
				return errf("sell the buildings in the %s group first", t.Group)
			}
		}
	}
	prop.Mortgaged = true
	p.Cash += t.Mortgage
	s.Bank.Cash -= t.Mortgage
	s.logf("%s mortgages %s for $%d", p.Username, t.Name, t.Mortgage)
	return nil
}

func (s *State) handleUnmortgage(p *Player, pos int) error {
	t := board.ByPos(pos)
	prop := s.Props[pos]
	if prop == nil || prop.Owner == nil || *prop.Owner != p.ID {
		return errf("you do not own %s", t.Name)
	}
	if !prop.Mortgaged {
		return errf("%s is not mortgaged", t.Name)
	}
	cost := unmortgageCost(t)
	if p.Cash < cost {
		return errf("lifting the mortgage on %s costs $%d", t.Name, cost)
	}
	prop.Mortgaged = false
	p.Cash -= cost
	s.Bank.Cash += cost
	s.logf("%s lifts the mortgage on %s for $%d", p.Username, t.Name, cost)
	return nil
}

// unmortgageCost is the mortgage value plus 10% interest.
func unmortgageCost(t board.Tile) int {
	return t.Mortgage + t.Mortgage/10
}
