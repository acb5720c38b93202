package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

// sendToJail confines the player. Any re-roll earned this turn is
// forfeited.
func (s *State) sendToJail(p *Player) {
	p.Pos = board.JailPos
	p.InJail = true
	p.JailTurns = 0
	p.doublesRun = 0
	p.doubles = false
	s.extraRoll = false
	s.logf("%s goes to jail", p.Username)
}

func (s *State) release(p *Player) {
	p.InJail = false
	p.JailTurns = 0
}

// jailRoll is the in-jail roll: doubles walk free (no re-roll), and
// after the third confined turn the fine is no longer optional.
func (s *State) jailRoll(p *Player) error {
	d1, d2 := s.dice.roll()
	s.emit(EvDiceResult, DiceResultPayload{PlayerID: p.ID, D1: d1, D2: d2, Pos: p.Pos})

	if d1 == d2 {
		s.release(p)
		s.logf("%s rolls doubles and leaves jail", p.Username)
		s.movePlayer(p, s.dice.total())
		s.resolveLanding(p)
		return nil
	}

	if p.JailTurns >= 3 {
		s.logf("%s must pay the $%d fine after three turns in jail", p.Username, JailFine)
		s.charge(p, JailFine, nil)
		if p.Bankrupt {
			s.advance()
			return nil
		}
		s.release(p)
		s.movePlayer(p, s.dice.total())
		s.resolveLanding(p)
		return nil
	}

	s.logf("%s stays in jail", p.Username)
	s.Phase = PhasePostRoll
	return nil
}

func (s *State) handleJailPayFine(p *Player) error {
	if !p.InJail {
		return errf("you are not in jail")
	}
	if p.Cash < JailFine {
		return errf("the fine is $%d", JailFine)
	}
	p.Cash -= JailFine
	s.Bank.Cash += JailFine
	s.release(p)
	s.Phase = PhasePreRoll
	s.logf("%s pays the $%d fine and leaves jail", p.Username, JailFine)
	return nil
}

func (s *State) handleJailUseCard(p *Player) error {
	if !p.InJail {
		return errf("you are not in jail")
	}
	if p.JailCards < 1 {
		return errf("you hold no get-out-of-jail card")
	}
	p.JailCards--
	s.release(p)
	s.Phase = PhasePreRoll
	s.logf("%s uses a get-out-of-jail card", p.Username)
	return nil
}
