package game

import (
	"sync"
	"time"
)

const (
	BidWindow   = 15 * time.Second
	TradeWindow = 2 * time.Minute
)

// Room owns one State and is its only writer: every command — player
// input, disconnect, timer expiry — funnels through one channel drained
// by one goroutine, so a timeout can never race a late bid.
type Room struct {
	ID string

	state   *State
	cmds    chan envelope
	done    chan struct{}
	closing sync.Once

	auctionTimer *time.Timer
	auctionSeq   int
	tradeTimer   *time.Timer
	tradeSeq     int

	// Broadcast delivers engine events to the sessions; OnGameOver
	// fires once after the room reaches its terminal state.
	Broadcast  func([]Event)
	OnGameOver func(winner *PlayerID)
}

type result struct {
	events []Event
	err    error
}

type envelope struct {
	actor PlayerID
	cmd   Command
	reply chan result
}

func NewRoom(id string, players []Player, seed int64) *Room {
	return &Room{
		ID:    id,
		state: New(players, seed),
		cmds:  make(chan envelope, 16),
		done:  make(chan struct{}),
	}
}

// Start opens play and begins draining commands.
func (r *Room) Start() {
	r.deliver(r.state.Begin())
	go r.loop()
}

// Close stops the room goroutine. Pending commands are dropped. Safe
// to call more than once.
func (r *Room) Close() {
	r.closing.Do(func() { close(r.done) })
}

// Do submits a command on behalf of a player and waits for the verdict.
// Events reach the sessions through Broadcast; the returned error is
// the sender's private rejection, if any.
func (r *Room) Do(actor PlayerID, c Command) error {
	if c.Kind == cmdAuctionTimeout || c.Kind == cmdTradeTimeout || c.Kind == cmdSnapshot {
		return errf("nice try")
	}
	env := envelope{actor: actor, cmd: c, reply: make(chan result, 1)}
	select {
	case r.cmds <- env:
	case <-r.done:
		return errf("the room is closed")
	}
	select {
	case res := <-env.reply:
		return res.err
	case <-r.done:
		return errf("the room is closed")
	}
}

func (r *Room) loop() {
	for {
		select {
		case env := <-r.cmds:
			events, err := r.state.Apply(env.actor, env.cmd)
			if env.reply != nil {
				env.reply <- result{events: events, err: err}
			}
			if env.cmd.Kind == cmdSnapshot {
				continue
			}
			if err == nil {
				r.deliver(events)
				r.armTimers()
				if r.state.Phase == PhaseGameOver {
					if r.OnGameOver != nil {
						r.OnGameOver(r.state.Winner)
					}
					r.stopTimers()
					r.Close()
					return
				}
			}
		case <-r.done:
			r.stopTimers()
			return
		}
	}
}

func (r *Room) deliver(events []Event) {
	if r.Broadcast != nil && len(events) > 0 {
		r.Broadcast(events)
	}
}

// armTimers keeps one timer per active negotiation, re-armed whenever
// its sequence moves. Expiry is queued as just another command.
func (r *Room) armTimers() {
	if a := r.state.Auction; a != nil {
		if r.auctionTimer == nil || r.auctionSeq != a.Seq {
			r.stopAuctionTimer()
			r.auctionSeq = a.Seq
			seq := a.Seq
			r.auctionTimer = time.AfterFunc(BidWindow, func() {
				r.inject(Command{Kind: cmdAuctionTimeout, seq: seq})
			})
		}
	} else {
		r.stopAuctionTimer()
	}

	if t := r.state.Trade; t != nil {
		if r.tradeTimer == nil || r.tradeSeq != t.Seq {
			r.stopTradeTimer()
			r.tradeSeq = t.Seq
			seq := t.Seq
			r.tradeTimer = time.AfterFunc(TradeWindow, func() {
				r.inject(Command{Kind: cmdTradeTimeout, seq: seq})
			})
		}
	} else {
		r.stopTradeTimer()
	}
}

func (r *Room) inject(c Command) {
	select {
	case r.cmds <- envelope{cmd: c}:
	case <-r.done:
	}
}

func (r *Room) stopAuctionTimer() {
	if r.auctionTimer != nil {
		r.auctionTimer.Stop()
		r.auctionTimer = nil
	}
}

func (r *Room) stopTradeTimer() {
	if r.tradeTimer != nil {
		r.tradeTimer.Stop()
		r.tradeTimer = nil
	}
}

func (r *Room) stopTimers() {
	r.stopAuctionTimer()
	r.stopTradeTimer()
}

// Snapshot exposes the current state for late joiners / reconnects. It
// runs through the command queue like everything else so the view is
// never torn.
func (r *Room) Snapshot() (Snapshot, error) {
	env := envelope{cmd: Command{Kind: cmdSnapshot}, reply: make(chan result, 1)}
	select {
	case r.cmds <- env:
	case <-r.done:
		return Snapshot{}, errf("the room is closed")
	}
	select {
	case res := <-env.reply:
		if res.err != nil {
			return Snapshot{}, res.err
		}
		return res.events[0].Data.(Snapshot), nil
	case <-r.done:
		return Snapshot{}, errf("the room is closed")
	}
}
