package game

import (
	"github.com/tycoon-games/tycoon-backend/platform/board"
)

// Trade is a two-party atomic exchange. One per room; proposing is
// blocked while an auction runs (the phase table enforces both).
type Trade struct {
	Initiator PlayerID
	Receiver  PlayerID
	Offer     TradeOffer // initiator -> receiver
	Ask       TradeOffer // receiver -> initiator
	Seq       int
}

func (s *State) handleProposeTrade(p *Player, receiver PlayerID, offer, ask TradeOffer) error {
	if s.Trade != nil {
		return errf("a trade is already on the table")
	}
	if receiver == p.ID {
		return errf("you cannot trade with yourself")
	}
	other := s.player(receiver)
	if other == nil {
		return errf("unknown trade partner")
	}
	if other.Bankrupt {
		return errf("%s is bankrupt", other.Username)
	}
	if offer.empty() && ask.empty() {
		return errf("an empty trade is pointless")
	}
	if err := s.validateOffer(p, offer); err != nil {
		return err
	}
	if err := s.validateOffer(other, ask); err != nil {
		return err
	}

	s.Trade = &Trade{Initiator: p.ID, Receiver: receiver, Offer: offer, Ask: ask}
	s.resumePhase = s.Phase
	s.Phase = PhaseTrading
	s.logf("%s proposes a trade to %s", p.Username, other.Username)
	s.emit(EvTradeProposal, TradePayload{Initiator: p.ID, Receiver: receiver, Offer: offer, Ask: ask})
	return nil
}

// handleUpdateTrade lets the initiator amend the standing offer before
// the receiver answers.
func (s *State) handleUpdateTrade(p *Player, offer, ask TradeOffer) error {
	tr := s.Trade
	if tr.Initiator != p.ID {
		return errf("only the proposer can amend the trade")
	}
	other := s.player(tr.Receiver)
	if err := s.validateOffer(p, offer); err != nil {
		return err
	}
	if err := s.validateOffer(other, ask); err != nil {
		return err
	}
	tr.Offer = offer
	tr.Ask = ask
	tr.Seq++
	s.emit(EvTradeUpdate, TradePayload{Initiator: tr.Initiator, Receiver: tr.Receiver, Offer: offer, Ask: ask})
	return nil
}

// validateOffer checks one leg against the offering player's live
// holdings: you cannot give what you do not hold, and a street whose
// color group carries buildings is locked.
func (s *State) validateOffer(p *Player, o TradeOffer) error {
	if o.Cash < 0 || o.JailCards < 0 {
		return errf("negative offers are not a thing")
	}
	if o.Cash > p.Cash {
		return errf("%s does not have $%d", p.Username, o.Cash)
	}
	if o.JailCards > p.JailCards {
		return errf("%s holds %d jail card(s)", p.Username, p.JailCards)
	}
	seen := make(map[int]bool)
	for _, pos := range o.Properties {
		if pos < 0 || pos >= board.Size || !board.ByPos(pos).Ownable() {
			return errf("position %d is not a tradable property", pos)
		}
		if seen[pos] {
			return errf("%s is listed twice", board.ByPos(pos).Name)
		}
		seen[pos] = true
		prop := s.Props[pos]
		if prop.Owner == nil || *prop.Owner != p.ID {
			return errf("%s does not own %s", p.Username, board.ByPos(pos).Name)
		}
		t := board.ByPos(pos)
		if t.Kind == board.KindStreet {
			for _, gp := range board.Group(t.Group) {
				if s.level(gp) > 0 {
					return errf("sell the buildings in the %s group before trading %s", t.Group, t.Name)
				}
			}
		}
	}
	return nil
}

// handleAcceptTrade re-validates both legs against live state, then
// applies them as one step. A failed validation rejects the accept and
// leaves the trade pending.
func (s *State) handleAcceptTrade(p *Player) error {
	tr := s.Trade
	if tr.Receiver != p.ID {
		return errf("only %s can accept this trade", string(tr.Receiver))
	}
	initiator := s.player(tr.Initiator)
	if err := s.validateOffer(initiator, tr.Offer); err != nil {
		return err
	}
	if err := s.validateOffer(p, tr.Ask); err != nil {
		return err
	}

	s.applyLeg(initiator, p, tr.Offer)
	s.applyLeg(p, initiator, tr.Ask)
	s.logf("%s and %s complete a trade", initiator.Username, p.Username)
	s.closeTrade("completed")
	return nil
}

func (s *State) applyLeg(from, to *Player, o TradeOffer) {
	from.Cash -= o.Cash
	to.Cash += o.Cash
	from.JailCards -= o.JailCards
	to.JailCards += o.JailCards
	for _, pos := range o.Properties {
		id := to.ID
		s.Props[pos].Owner = &id // mortgage flag rides along
	}
}

func (s *State) handleDeclineTrade(p *Player) error {
	if s.Trade.Receiver != p.ID {
		return errf("only the receiver can decline")
	}
	s.logf("%s declines the trade", p.Username)
	s.closeTrade("declined")
	return nil
}

func (s *State) handleCancelTrade(p *Player) error {
	if s.Trade.Initiator != p.ID {
		return errf("only the proposer can cancel")
	}
	s.logf("%s withdraws the trade", p.Username)
	s.closeTrade("cancelled")
	return nil
}

func (s *State) handleTradeTimeout(seq int) error {
	if seq != s.Trade.Seq {
		return errf("stale trade timer")
	}
	s.logf("the trade expires unanswered")
	s.closeTrade("expired")
	return nil
}

func (s *State) closeTrade(outcome string) {
	tr := s.Trade
	s.emit(EvTradeEnd, TradeEndPayload{Initiator: tr.Initiator, Receiver: tr.Receiver, Outcome: outcome})
	s.Trade = nil
	s.Phase = s.resumePhase
}
