package game

// Phase is the turn state machine position. Which commands are legal in
// which phase is declared once in legalActions and checked at dispatch,
// not inside the handlers.
type Phase int

const (
	PhaseTurnStart Phase = iota // transient: turn handover
	PhasePreRoll                // current player must roll
	PhasePostRoll               // rolled; buy decision and estate management
	PhaseAuction                // an auction is live, bids only
	PhaseTrading                // a trade is on the table
	PhaseJailDecision           // current player is in jail and must choose
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTurnStart:
		return "turn-start"
	case PhasePreRoll:
		return "pre-roll"
	case PhasePostRoll:
		return "post-roll"
	case PhaseAuction:
		return "auction"
	case PhaseTrading:
		return "trading"
	case PhaseJailDecision:
		return "jail-decision"
	case PhaseGameOver:
		return "game-over"
	}
	return "unknown"
}

var legalActions = map[Phase]map[Kind]bool{
	PhasePreRoll: {
		CmdRoll:         true,
		CmdBuild:        true,
		CmdSellBuilding: true,
		CmdMortgage:     true,
		CmdUnmortgage:   true,
		CmdProposeTrade: true,
		CmdResign:       true,
	},
	PhasePostRoll: {
		CmdBuy:          true,
		CmdDeclineBuy:   true,
		CmdBuild:        true,
		CmdSellBuilding: true,
		CmdMortgage:     true,
		CmdUnmortgage:   true,
		CmdProposeTrade: true,
		CmdEndTurn:      true,
		CmdResign:       true,
	},
	PhaseAuction: {
		CmdBid:            true,
		CmdPassBid:        true,
		CmdResign:         true,
		cmdAuctionTimeout: true,
	},
	PhaseTrading: {
		CmdUpdateTrade:  true,
		CmdAcceptTrade:  true,
		CmdDeclineTrade: true,
		CmdCancelTrade:  true,
		CmdResign:       true,
		cmdTradeTimeout: true,
	},
	PhaseJailDecision: {
		CmdRoll:         true,
		CmdJailPayFine:  true,
		CmdJailUseCard:  true,
		CmdBuild:        true,
		CmdSellBuilding: true,
		CmdMortgage:     true,
		CmdUnmortgage:   true,
		CmdProposeTrade: true,
		CmdResign:       true,
	},
	PhaseGameOver: {},
}

// anyActor lists commands that are not gated on being the current
// player. Who exactly may send them is still validated by the handler
// (eligible bidder, trade receiver, ...).
var anyActor = map[Kind]bool{
	CmdBid:            true,
	CmdPassBid:        true,
	CmdAcceptTrade:    true,
	CmdDeclineTrade:   true,
	CmdCancelTrade:    true,
	CmdUpdateTrade:    true,
	CmdResign:         true,
	cmdAuctionTimeout: true,
	cmdTradeTimeout:   true,
}
