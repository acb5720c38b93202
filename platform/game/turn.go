package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

// beginTurn hands the board to s.Current. Jailed players get the jail
// decision phase instead of a free roll.
func (s *State) beginTurn() {
	p := s.current()
	s.Turn++
	p.doublesRun = 0
	p.doubles = false
	s.extraRoll = false
	s.emit(EvTurnStart, TurnStartPayload{PlayerID: p.ID, Turn: s.Turn})
	s.emitTo(p.ID, EvYourTurn, TurnStartPayload{PlayerID: p.ID, Turn: s.Turn})
	if p.InJail {
		p.JailTurns++
		s.Phase = PhaseJailDecision
		s.logf("%s is in jail (turn %d of 3)", p.Username, p.JailTurns)
	} else {
		s.Phase = PhasePreRoll
	}
}

// advance moves the turn to the next non-bankrupt seat. With fewer than
// two players left the game ends instead.
func (s *State) advance() {
	if s.finishIfDecided() {
		return
	}
	for {
		s.Current = (s.Current + 1) % len(s.Players)
		if !s.current().Bankrupt {
			break
		}
	}
	s.beginTurn()
}

// finishIfDecided transitions to GameOver when at most one player is
// still solvent. Returns true if the game ended.
func (s *State) finishIfDecided() bool {
	alive := s.alive()
	if len(alive) > 1 {
		return false
	}
	s.Phase = PhaseGameOver
	if len(alive) == 1 {
		w := alive[0].ID
		s.Winner = &w
		s.logf("%s wins the game", alive[0].Username)
		s.emit(EvGameEnd, GameEndPayload{Winner: w})
	}
	return true
}

func (s *State) handleRoll(p *Player) error {
	if p.InJail {
		return s.jailRoll(p)
	}

	d1, d2 := s.dice.roll()
	p.doubles = d1 == d2
	if p.doubles {
		p.doublesRun++
	} else {
		p.doublesRun = 0
	}

	if p.doublesRun >= 3 {
		s.emit(EvDiceResult, DiceResultPayload{PlayerID: p.ID, D1: d1, D2: d2, Pos: p.Pos})
		s.logf("%s rolled doubles three times and is sent to jail", p.Username)
		s.sendToJail(p)
		s.Phase = PhasePostRoll
		return nil
	}

	s.extraRoll = p.doubles
	s.movePlayer(p, s.dice.total())
	s.emit(EvDiceResult, DiceResultPayload{PlayerID: p.ID, D1: d1, D2: d2, Pos: p.Pos})
	s.resolveLanding(p)
	return nil
}

// movePlayer advances the token, paying GO salary on the way past.
func (s *State) movePlayer(p *Player, steps int) {
	next := (p.Pos + steps) % board.Size
	if next < p.Pos {
		p.Cash += GoSalary
		s.logf("%s passes GO and collects $%d", p.Username, GoSalary)
	}
	p.Pos = next
}

// moveTo teleports the token, crediting salary when the move wraps past
// GO (card effects move forward around the board).
func (s *State) moveTo(p *Player, pos int) {
	if pos <= p.Pos {
		p.Cash += GoSalary
		s.logf("%s passes GO and collects $%d", p.Username, GoSalary)
	}
	p.Pos = pos
}

// resolveLanding applies the landed tile's effect, then settles the
// phase: a pending purchase or the earned re-roll decides where the
// turn sits.
func (s *State) resolveLanding(p *Player) {
	s.applyTile(p)
	if s.Phase == PhaseGameOver {
		return
	}
	if s.PendingBuy != nil {
		s.Phase = PhasePostRoll
		return
	}
	s.afterAction(p)
}

// applyTile runs the effect of the tile p stands on. Card effects may
// move the token and recurse; destinations are never card tiles, so the
// recursion is bounded.
func (s *State) applyTile(p *Player) {
	t := board.ByPos(p.Pos)
	s.logf("%s lands on %s", p.Username, t.Name)

	switch t.Kind {
	case board.KindStreet, board.KindRailroad, board.KindUtility:
		prop := s.Props[t.Pos]
		if prop.Owner == nil {
			pos := t.Pos
			s.PendingBuy = &pos
			return
		}
		if *prop.Owner != p.ID {
			owner := s.player(*prop.Owner)
			if !owner.Bankrupt {
				rent := s.RentFor(t.Pos, s.dice.total())
				if rent > 0 {
					s.logf("%s owes %s $%d rent for %s", p.Username, owner.Username, rent, t.Name)
					s.charge(p, rent, owner)
				}
			}
		}
	case board.KindTax:
		s.logf("%s pays $%d %s", p.Username, t.Tax, t.Name)
		s.charge(p, t.Tax, nil)
	case board.KindChance:
		s.drawCard(p, s.chance, "chance")
	case board.KindChest:
		s.drawCard(p, s.chest, "chest")
	case board.KindGoToJail:
		s.sendToJail(p)
	}
}

// afterAction decides where the turn sits once a landing, purchase or
// auction has settled.
func (s *State) afterAction(p *Player) {
	if p.Bankrupt {
		s.advance()
		return
	}
	if s.extraRoll && !p.InJail {
		s.extraRoll = false
		s.Phase = PhasePreRoll
		s.logf("%s rolled doubles and goes again", p.Username)
		return
	}
	s.Phase = PhasePostRoll
}

func (s *State) handleBuy(p *Player) error {
	if s.PendingBuy == nil {
		return errf("nothing to buy")
	}
	pos := *s.PendingBuy
	t := board.ByPos(pos)
	if p.Cash < t.Price {
		return errf("you cannot afford %s ($%d)", t.Name, t.Price)
	}
	p.Cash -= t.Price
	s.Bank.Cash += t.Price
	id := p.ID
	s.Props[pos].Owner = &id
	s.PendingBuy = nil
	s.logf("%s buys %s for $%d", p.Username, t.Name, t.Price)
	s.afterAction(p)
	return nil
}

func (s *State) handleDeclineBuy(p *Player) error {
	if s.PendingBuy == nil {
		return errf("nothing to decline")
	}
	pos := *s.PendingBuy
	s.PendingBuy = nil
	s.logf("%s declines to buy %s; it goes to auction", p.Username, board.ByPos(pos).Name)
	s.startAuction(pos)
	return nil
}

func (s *State) handleEndTurn(p *Player) error {
	if s.PendingBuy != nil {
		return errf("decide on the property first")
	}
	s.advance()
	return nil
}

// handleResign is a voluntary exit (or a disconnect, which the room
// translates into the same command): full bankruptcy to the bank.
func (s *State) handleResign(p *Player) error {
	if p.Bankrupt {
		return nil
	}
	s.logf("%s resigns", p.Username)
	wasCurrent := s.current().ID == p.ID
	if s.Trade != nil && (s.Trade.Initiator == p.ID || s.Trade.Receiver == p.ID) {
		s.closeTrade("cancelled")
	}
	s.declareBankruptcy(p, nil)
	if s.Phase == PhaseGameOver {
		return nil
	}
	if s.Auction != nil {
		// a bankrupt leader's bid dies with them
		if s.Auction.HighBidder != nil && *s.Auction.HighBidder == p.ID {
			s.Auction.HighBidder = nil
			s.Auction.HighBid = 0
			s.Auction.Seq++
		}
		// settling the auction (if this was the last holdout) restores
		// the phase and skips the bankrupt seat itself
		s.dropBidder(p.ID)
		return nil
	}
	if wasCurrent {
		// the buy decision dies with the decider; the tile stays with
		// the bank for the next landing
		s.PendingBuy = nil
		s.advance()
	}
	return nil
}
