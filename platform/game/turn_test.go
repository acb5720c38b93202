package game

import (
	"testing"

	"github.com/tycoon-games/tycoon-backend/platform/board"
)

func TestBeginOpensFirstTurn(t *testing.T) {
	s := testState(t, 3)
	if s.Phase != PhasePreRoll {
		t.Fatalf("phase = %s, want pre-roll", s.Phase)
	}
	if s.current().ID != "p1" {
		t.Fatalf("current = %s, want p1", s.current().ID)
	}
	if s.Turn != 1 {
		t.Fatalf("turn = %d, want 1", s.Turn)
	}
	for _, p := range s.Players {
		if p.Cash != StartingCash {
			t.Fatalf("%s starts with $%d, want $%d", p.ID, p.Cash, StartingCash)
		}
		if p.Pos != board.GoPos {
			t.Fatalf("%s starts at %d, want GO", p.ID, p.Pos)
		}
	}
}

func TestRollOutOfTurnRejected(t *testing.T) {
	s := testState(t, 3)
	mustFail(t, s, "p2", Command{Kind: CmdRoll})
	if s.Phase != PhasePreRoll {
		t.Fatalf("rejected command changed phase to %s", s.Phase)
	}
}

func TestCommandIllegalForPhaseRejected(t *testing.T) {
	s := testState(t, 2)
	// nothing to buy and not the buying phase
	mustFail(t, s, "p1", Command{Kind: CmdBuy})
	mustFail(t, s, "p1", Command{Kind: CmdEndTurn})
	mustFail(t, s, "p1", Command{Kind: CmdBid, Amount: 50})
}

func TestUnknownPlayerRejected(t *testing.T) {
	s := testState(t, 2)
	mustFail(t, s, "ghost", Command{Kind: CmdRoll})
}

func TestRollEmitsDiceAndState(t *testing.T) {
	s := testState(t, 2)
	events := mustApply(t, s, "p1", Command{Kind: CmdRoll})
	if !hasEvent(events, EvDiceResult) {
		t.Fatal("roll did not emit dice-result")
	}
	if !hasEvent(events, EvStateUpdate) {
		t.Fatal("roll did not emit state-update")
	}
	if s.Phase == PhaseTurnStart {
		t.Fatalf("roll left the phase unsettled")
	}
}

func TestRetryingRejectedRollIsStable(t *testing.T) {
	s := testState(t, 2)
	first := mustFail(t, s, "p2", Command{Kind: CmdRoll})
	second := mustFail(t, s, "p2", Command{Kind: CmdRoll})
	if first.Error() != second.Error() {
		t.Fatalf("retry changed the verdict: %q then %q", first, second)
	}
}

func TestBuyProperty(t *testing.T) {
	s := testState(t, 2)
	pos := 1 // $60 street
	s.PendingBuy = &pos
	s.Phase = PhasePostRoll
	s.Players[0].Pos = pos

	mustApply(t, s, "p1", Command{Kind: CmdBuy})
	prop := s.Props[pos]
	if prop.Owner == nil || *prop.Owner != "p1" {
		t.Fatal("purchase did not transfer ownership")
	}
	if got := s.Players[0].Cash; got != StartingCash-60 {
		t.Fatalf("buyer cash = %d, want %d", got, StartingCash-60)
	}
	if s.PendingBuy != nil {
		t.Fatal("pending buy not cleared")
	}
}

func TestBuyWithoutFundsRejected(t *testing.T) {
	s := testState(t, 2)
	pos := 39 // Boardwalk, $400
	s.PendingBuy = &pos
	s.Phase = PhasePostRoll
	s.Players[0].Cash = 100

	mustFail(t, s, "p1", Command{Kind: CmdBuy})
	if s.Props[pos].Owner != nil {
		t.Fatal("rejected purchase still transferred ownership")
	}
	if s.PendingBuy == nil {
		t.Fatal("pending buy lost on rejection")
	}
}

func TestEndTurnBlockedByPendingBuy(t *testing.T) {
	s := testState(t, 2)
	pos := 1
	s.PendingBuy = &pos
	s.Phase = PhasePostRoll
	mustFail(t, s, "p1", Command{Kind: CmdEndTurn})
}

func TestEndTurnAdvances(t *testing.T) {
	s := testState(t, 3)
	s.Phase = PhasePostRoll
	events := mustApply(t, s, "p1", Command{Kind: CmdEndTurn})
	prompted := false
	for _, ev := range events {
		if ev.Name == EvYourTurn && ev.Target != nil && *ev.Target == "p2" {
			prompted = true
		}
	}
	if !prompted {
		t.Fatal("no targeted your-turn prompt for the next player")
	}
	if s.current().ID != "p2" {
		t.Fatalf("current = %s, want p2", s.current().ID)
	}
	if s.Phase != PhasePreRoll {
		t.Fatalf("phase = %s, want pre-roll", s.Phase)
	}
	if s.Turn != 2 {
		t.Fatalf("turn = %d, want 2", s.Turn)
	}
}

func TestTurnOrderSkipsBankrupt(t *testing.T) {
	s := testState(t, 3)
	s.Players[1].Bankrupt = true
	s.Phase = PhasePostRoll
	mustApply(t, s, "p1", Command{Kind: CmdEndTurn})
	if s.current().ID != "p3" {
		t.Fatalf("current = %s, want p3 (p2 is bankrupt)", s.current().ID)
	}
}

func TestPassingGoPaysSalary(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Pos = 38
	s.movePlayer(p, 4)
	if p.Pos != 2 {
		t.Fatalf("pos = %d, want 2", p.Pos)
	}
	if p.Cash != StartingCash+GoSalary {
		t.Fatalf("cash = %d, want %d", p.Cash, StartingCash+GoSalary)
	}
}

func TestLandingShortOfGoPaysNothing(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Pos = 30
	s.movePlayer(p, 5)
	if p.Cash != StartingCash {
		t.Fatalf("cash = %d, salary paid without passing GO", p.Cash)
	}
}

func TestLandingOnOwnedPropertyChargesRent(t *testing.T) {
	s := testState(t, 2)
	give(s, "p2", 3) // Baltic, base rent $4
	p := s.Players[0]
	p.Pos = 3
	s.dice.d1, s.dice.d2 = 1, 2
	s.applyTile(p)
	if p.Cash != StartingCash-4 {
		t.Fatalf("tenant cash = %d, want %d", p.Cash, StartingCash-4)
	}
	if s.Players[1].Cash != StartingCash+4 {
		t.Fatalf("owner cash = %d, want %d", s.Players[1].Cash, StartingCash+4)
	}
}

func TestLandingOnOwnPropertyIsFree(t *testing.T) {
	s := testState(t, 2)
	give(s, "p1", 3)
	p := s.Players[0]
	p.Pos = 3
	s.applyTile(p)
	if p.Cash != StartingCash {
		t.Fatalf("cash = %d, rent charged on own property", p.Cash)
	}
}

func TestLandingOnTaxTile(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Pos = 4 // Income Tax, $200
	s.applyTile(p)
	if p.Cash != StartingCash-200 {
		t.Fatalf("cash = %d, want %d", p.Cash, StartingCash-200)
	}
}

func TestLandingOnUnownedPropertyOffersBuy(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Pos = 6
	s.resolveLanding(p)
	if s.PendingBuy == nil || *s.PendingBuy != 6 {
		t.Fatal("landing on unowned property did not open a buy decision")
	}
	if s.Phase != PhasePostRoll {
		t.Fatalf("phase = %s, want post-roll", s.Phase)
	}
}

func TestGoToJailTile(t *testing.T) {
	s := testState(t, 2)
	p := s.Players[0]
	p.Pos = 30
	s.extraRoll = true
	s.resolveLanding(p)
	if !p.InJail || p.Pos != board.JailPos {
		t.Fatal("go-to-jail tile did not confine the player")
	}
	if s.Phase != PhasePostRoll {
		t.Fatalf("phase = %s, jailed player kept an extra roll", s.Phase)
	}
}

func TestGameOverRejectsEverything(t *testing.T) {
	s := testState(t, 2)
	s.Phase = PhaseGameOver
	if _, err := s.Apply("p1", Command{Kind: CmdRoll}); err == nil {
		t.Fatal("roll accepted after game over")
	}
	if _, err := s.Apply("p1", Command{Kind: CmdResign}); err == nil {
		t.Fatal("resign accepted after game over")
	}
}

func TestResignMidGameAdvancesTurn(t *testing.T) {
	s := testState(t, 3)
	give(s, "p1", 1, 3)
	mustApply(t, s, "p1", Command{Kind: CmdResign})
	if !s.Players[0].Bankrupt {
		t.Fatal("resigning player not marked bankrupt")
	}
	if s.current().ID != "p2" {
		t.Fatalf("current = %s, want p2", s.current().ID)
	}
	if s.Phase != PhasePreRoll {
		t.Fatalf("phase = %s, want pre-roll for the next player", s.Phase)
	}
	for _, pos := range []int{1, 3} {
		if s.Props[pos].Owner != nil {
			t.Fatalf("resigned estate at %d not returned to the bank", pos)
		}
	}
}

func TestResignClearsPendingBuy(t *testing.T) {
	s := testState(t, 3)
	pos := 1
	s.PendingBuy = &pos
	s.Phase = PhasePostRoll
	s.Players[0].Pos = pos

	mustApply(t, s, "p1", Command{Kind: CmdResign})
	if s.PendingBuy != nil {
		t.Fatal("buy decision outlived the decider")
	}
	if s.Props[pos].Owner != nil {
		t.Fatal("tile left the bank with its decider gone")
	}
	// the next player starts a clean turn
	if s.current().ID != "p2" {
		t.Fatalf("current = %s, want p2", s.current().ID)
	}
	if s.Phase != PhasePreRoll {
		t.Fatalf("phase = %s, want pre-roll", s.Phase)
	}
	mustFail(t, s, "p2", Command{Kind: CmdBuy})
}

func TestResignByNonCurrentPlayer(t *testing.T) {
	s := testState(t, 3)
	events := mustApply(t, s, "p3", Command{Kind: CmdResign})
	if !s.Players[2].Bankrupt {
		t.Fatal("p3 not marked bankrupt")
	}
	if s.current().ID != "p1" {
		t.Fatalf("current = %s, turn moved on a bystander resign", s.current().ID)
	}
	if !hasEvent(events, EvPlayerBankrupt) {
		t.Fatal("no player-bankrupt event")
	}
}

func TestLastSolventPlayerWins(t *testing.T) {
	s := testState(t, 2)
	events := mustApply(t, s, "p1", Command{Kind: CmdResign})
	if s.Phase != PhaseGameOver {
		t.Fatalf("phase = %s, want game-over", s.Phase)
	}
	if s.Winner == nil || *s.Winner != "p2" {
		t.Fatal("p2 not declared the winner")
	}
	if !hasEvent(events, EvGameEnd) {
		t.Fatal("no game-end event")
	}
}
