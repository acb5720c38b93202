package game

import (
	"math/rand"

	"github.com/tycoon-games/tycoon-backend/platform/board"
)

type cardEffect int

const (
	effCash cardEffect = iota
	effMove
	effGoToJail
	effJailFree
	effRepairs
)

type card struct {
	Text     string
	Effect   cardEffect
	Amount   int // effCash: delta; effRepairs: per-house cost
	PerHotel int // effRepairs
	Dest     int // effMove
}

// deck is a shuffled cycle: drawn cards go to the bottom.
type deck struct {
	cards []card
	next  int
}

func newDeck(rng *rand.Rand, cards []card) *deck {
	shuffled := make([]card, len(cards))
	copy(shuffled, cards)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &deck{cards: shuffled}
}

func (d *deck) draw() card {
	c := d.cards[d.next]
	d.next = (d.next + 1) % len(d.cards)
	return c
}

func newChanceDeck(rng *rand.Rand) *deck {
	return newDeck(rng, []card{
		{Text: "Advance to GO", Effect: effMove, Dest: board.GoPos},
		{Text: "Advance to Illinois Avenue", Effect: effMove, Dest: 24},
		{Text: "Advance to Boardwalk", Effect: effMove, Dest: 39},
		{Text: "Bank pays you a dividend of $50", Effect: effCash, Amount: 50},
		{Text: "Speeding fine: pay $15", Effect: effCash, Amount: -15},
		{Text: "Go directly to jail", Effect: effGoToJail},
		{Text: "Get out of jail free", Effect: effJailFree},
		{Text: "Make general repairs: $25 per house, $100 per hotel", Effect: effRepairs, Amount: 25, PerHotel: 100},
		{Text: "Your building loan matures: collect $150", Effect: effCash, Amount: 150},
		{Text: "Pay poor tax of $15", Effect: effCash, Amount: -15},
	})
}

func newChestDeck(rng *rand.Rand) *deck {
	return newDeck(rng, []card{
		{Text: "Advance to GO", Effect: effMove, Dest: board.GoPos},
		{Text: "Bank error in your favor: collect $200", Effect: effCash, Amount: 200},
		{Text: "Doctor's fees: pay $50", Effect: effCash, Amount: -50},
		{Text: "From sale of stock you get $45", Effect: effCash, Amount: 45},
		{Text: "Go directly to jail", Effect: effGoToJail},
		{Text: "Get out of jail free", Effect: effJailFree},
		{Text: "Income tax refund: collect $20", Effect: effCash, Amount: 20},
		{Text: "Street repairs: $40 per house, $115 per hotel", Effect: effRepairs, Amount: 40, PerHotel: 115},
		{Text: "You inherit $100", Effect: effCash, Amount: 100},
		{Text: "Hospital fees: pay $100", Effect: effCash, Amount: -100},
	})
}

func (s *State) drawCard(p *Player, d *deck, deckName string) {
	c := d.draw()
	s.emit(EvCardDrawn, CardPayload{PlayerID: p.ID, Deck: deckName, Text: c.Text})
	s.logf("%s draws: %s", p.Username, c.Text)

	switch c.Effect {
	case effCash:
		if c.Amount >= 0 {
			p.Cash += c.Amount
			s.Bank.Cash -= c.Amount
		} else {
			s.charge(p, -c.Amount, nil)
		}
	case effMove:
		s.moveTo(p, c.Dest)
		s.applyTile(p)
	case effGoToJail:
		s.sendToJail(p)
	case effJailFree:
		p.JailCards++
	case effRepairs:
		bill := 0
		for _, pos := range s.ownedBy(p.ID) {
			prop := s.Props[pos]
			if prop.Hotel {
				bill += c.PerHotel
			} else {
				bill += prop.Houses * c.Amount
			}
		}
		if bill > 0 {
			s.charge(p, bill, nil)
		}
	}
}
