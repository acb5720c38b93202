package game

// Kind tags a command. The wire layer maps socket event names onto
// these; the two timeout kinds are internal and can only be produced by
// the room's own timers.
type Kind int

const (
	CmdRoll Kind = iota
	CmdBuy
	CmdDeclineBuy
	CmdBid
	CmdPassBid
	CmdProposeTrade
	CmdUpdateTrade
	CmdAcceptTrade
	CmdDeclineTrade
	CmdCancelTrade
	CmdBuild
	CmdSellBuilding
	CmdMortgage
	CmdUnmortgage
	CmdJailPayFine
	CmdJailUseCard
	CmdEndTurn
	CmdResign

	cmdAuctionTimeout
	cmdTradeTimeout
	cmdSnapshot
)

func (k Kind) String() string {
	switch k {
	case CmdRoll:
		return "roll-dice"
	case CmdBuy:
		return "buy-property"
	case CmdDeclineBuy:
		return "decline-buy"
	case CmdBid:
		return "bid"
	case CmdPassBid:
		return "pass-bid"
	case CmdProposeTrade:
		return "propose-trade"
	case CmdUpdateTrade:
		return "update-trade"
	case CmdAcceptTrade:
		return "accept-trade"
	case CmdDeclineTrade:
		return "decline-trade"
	case CmdCancelTrade:
		return "cancel-trade"
	case CmdBuild:
		return "build"
	case CmdSellBuilding:
		return "sell-building"
	case CmdMortgage:
		return "mortgage"
	case CmdUnmortgage:
		return "unmortgage"
	case CmdJailPayFine:
		return "pay-out-jail"
	case CmdJailUseCard:
		return "use-jail-card"
	case CmdEndTurn:
		return "end-turn"
	case CmdResign:
		return "resign"
	case cmdAuctionTimeout:
		return "auction-timeout"
	case cmdTradeTimeout:
		return "trade-timeout"
	}
	return "unknown"
}

// TradeOffer is one side of a trade: what the offering player puts in.
type TradeOffer struct {
	Cash       int   `json:"cash"`
	Properties []int `json:"properties"`
	JailCards  int   `json:"jail_cards"`
}

func (o TradeOffer) empty() bool {
	return o.Cash == 0 && len(o.Properties) == 0 && o.JailCards == 0
}

// Command is the closed schema for everything a session (or a room
// timer) can ask of the engine. Fields beyond Kind are only meaningful
// for the kinds that declare them.
type Command struct {
	Kind Kind

	Amount int // CmdBid

	Pos   int  // CmdBuild, CmdSellBuilding, CmdMortgage, CmdUnmortgage
	Hotel bool // CmdBuild: upgrade to hotel

	Receiver PlayerID   // CmdProposeTrade
	Offer    TradeOffer // CmdProposeTrade/CmdUpdateTrade: initiator gives
	Ask      TradeOffer // CmdProposeTrade/CmdUpdateTrade: initiator wants

	seq int // timeout generation, stale timers are dropped
}
