package game

import (
	"fmt"
	"testing"

	"github.com/tycoon-games/tycoon-backend/platform/board"
)

func testState(t *testing.T, n int) *State {
	t.Helper()
	var players []Player
	for i := 0; i < n; i++ {
		players = append(players, Player{
			ID:       PlayerID(fmt.Sprintf("p%d", i+1)),
			Username: fmt.Sprintf("player%d", i+1),
		})
	}
	s := New(players, 42)
	s.Begin()
	return s
}

func give(s *State, id PlayerID, positions ...int) {
	for _, pos := range positions {
		owner := id
		s.Props[pos].Owner = &owner
	}
}

// placeHouses puts houses down directly, drawing from the bank supply
// so the finite-stock invariant keeps holding.
func placeHouses(s *State, pos, n int) {
	s.Props[pos].Houses = n
	s.Bank.Houses -= n
}

func placeHotel(s *State, pos int) {
	s.Props[pos].Houses = 0
	s.Props[pos].Hotel = true
	s.Bank.Hotels--
}

func mustApply(t *testing.T, s *State, actor PlayerID, c Command) []Event {
	t.Helper()
	events, err := s.Apply(actor, c)
	if err != nil {
		t.Fatalf("apply %s as %s: %v", c.Kind, actor, err)
	}
	return events
}

func mustFail(t *testing.T, s *State, actor PlayerID, c Command) error {
	t.Helper()
	_, err := s.Apply(actor, c)
	if err == nil {
		t.Fatalf("apply %s as %s: expected rejection", c.Kind, actor)
	}
	if !IsRuleError(err) {
		t.Fatalf("apply %s as %s: expected rule error, got %v", c.Kind, actor, err)
	}
	return err
}

// checkBankSupply asserts the finite-supply invariant: buildings in
// play plus bank stock always total the full supply.
func checkBankSupply(t *testing.T, s *State) {
	t.Helper()
	houses, hotels := 0, 0
	for _, prop := range s.Props {
		houses += prop.Houses
		if prop.Hotel {
			hotels++
		}
	}
	if houses+s.Bank.Houses != BankHouses {
		t.Fatalf("house supply leak: %d in play + %d in bank != %d", houses, s.Bank.Houses, BankHouses)
	}
	if hotels+s.Bank.Hotels != BankHotels {
		t.Fatalf("hotel supply leak: %d in play + %d in bank != %d", hotels, s.Bank.Hotels, BankHotels)
	}
}

func hasEvent(events []Event, name string) bool {
	for _, ev := range events {
		if ev.Name == name {
			return true
		}
	}
	return false
}

// brownGroup returns the two brown streets, the smallest full group.
func brownGroup() (int, int) {
	g := board.Group("brown")
	return g[0], g[1]
}
