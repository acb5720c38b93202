package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

// RentFor computes the rent owed for landing on pos with the given dice
// total. Pure with respect to the rest of the turn: it only reads
// ownership and building state. Mortgaged property yields nothing.
func (s *State) RentFor(pos int, diceTotal int) int {
	prop := s.Props[pos]
	if prop == nil || prop.Owner == nil || prop.Mortgaged {
		return 0
	}
	owner := *prop.Owner
	t := board.ByPos(pos)

	switch t.Kind {
	case board.KindStreet:
		if prop.Hotel {
			return t.Rent[5]
		}
		if prop.Houses > 0 {
			return t.Rent[prop.Houses]
		}
		if s.ownsGroup(owner, t.Group) && s.groupUnmortgaged(t.Group) {
			return t.Rent[0] * 2
		}
		return t.Rent[0]

	case board.KindRailroad:
		n := s.countKind(owner, board.Railroads())
		return board.RailroadRent[n]

	case board.KindUtility:
		if s.countKind(owner, board.Utilities()) == 2 {
			return diceTotal * 10
		}
		return diceTotal * 4
	}
	return 0
}

func (s *State) groupUnmortgaged(group string) bool {
	for _, pos := range board.Group(group) {
		if s.Props[pos].Mortgaged {
			return false
		}
	}
	return true
}
