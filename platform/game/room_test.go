package game

import (
	"sync"
	"testing"
	"time"
)

func testRoom(t *testing.T, n int) (*Room, *eventSink) {
	t.Helper()
	var players []Player
	ids := []PlayerID{"p1", "p2", "p3", "p4"}
	for i := 0; i < n; i++ {
		players = append(players, Player{ID: ids[i], Username: string(ids[i])})
	}
	r := NewRoom("room-1", players, 42)
	sink := &eventSink{}
	r.Broadcast = sink.collect
	t.Cleanup(r.Close)
	return r, sink
}

type eventSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *eventSink) collect(events []Event) {
	s.mu.Lock()
	s.events = append(s.events, events...)
	s.mu.Unlock()
}

func (s *eventSink) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.Name == name {
			return true
		}
	}
	return false
}

func TestRoomStartBroadcastsOpening(t *testing.T) {
	r, sink := testRoom(t, 2)
	r.Start()
	if !sink.has(EvGameStart) {
		t.Fatal("no game-start broadcast")
	}
	if !sink.has(EvTurnStart) {
		t.Fatal("no turn-start broadcast")
	}
}

func TestRoomDispatchesCommands(t *testing.T) {
	r, sink := testRoom(t, 2)
	r.Start()
	if err := r.Do("p2", Command{Kind: CmdRoll}); err == nil {
		t.Fatal("out-of-turn roll accepted")
	}
	if err := r.Do("p1", Command{Kind: CmdRoll}); err != nil {
		t.Fatalf("roll rejected: %v", err)
	}
	if !sink.has(EvDiceResult) {
		t.Fatal("no dice-result broadcast")
	}
}

func TestRoomRejectsInternalCommands(t *testing.T) {
	r, _ := testRoom(t, 2)
	r.Start()
	if err := r.Do("p1", Command{Kind: cmdAuctionTimeout}); err == nil {
		t.Fatal("timer command accepted from a session")
	}
	if err := r.Do("p1", Command{Kind: cmdSnapshot}); err == nil {
		t.Fatal("snapshot command accepted from a session")
	}
}

func TestRoomSnapshotIsConsistent(t *testing.T) {
	r, _ := testRoom(t, 2)
	r.Start()
	snap, err := r.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("snapshot players = %d, want 2", len(snap.Players))
	}
	if snap.Current != "p1" {
		t.Fatalf("snapshot current = %s, want p1", snap.Current)
	}
	if snap.Phase != PhasePreRoll.String() {
		t.Fatalf("snapshot phase = %s, want pre-roll", snap.Phase)
	}
}

// Hammering the room from many goroutines must never corrupt state:
// exactly one roll can be the first accepted command, and a snapshot
// taken afterwards still describes a legal position.
func TestRoomSerializesConcurrentSenders(t *testing.T) {
	r, _ := testRoom(t, 4)
	r.Start()

	var wg sync.WaitGroup
	var accepted sync.Map
	for _, id := range []PlayerID{"p1", "p2", "p3", "p4"} {
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(id PlayerID) {
				defer wg.Done()
				if err := r.Do(id, Command{Kind: CmdRoll}); err == nil {
					accepted.Store(id, true)
				}
			}(id)
		}
	}
	wg.Wait()

	accepted.Range(func(key, _ interface{}) bool {
		if key.(PlayerID) != "p1" {
			t.Fatalf("roll accepted from %v out of turn", key)
		}
		return true
	})
	snap, err := r.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, p := range snap.Players {
		if p.Cash < 0 {
			t.Fatalf("%s has negative cash after the storm", p.ID)
		}
	}
}

func TestRoomClosedRejectsCommands(t *testing.T) {
	r, _ := testRoom(t, 2)
	r.Start()
	r.Close()
	// the drain goroutine sees done concurrently with the send
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if err := r.Do("p1", Command{Kind: CmdRoll}); err != nil {
			return
		}
	}
	t.Fatal("closed room kept accepting commands")
}

func TestRoomGameOverCallback(t *testing.T) {
	r, _ := testRoom(t, 2)
	done := make(chan PlayerID, 1)
	r.OnGameOver = func(winner *PlayerID) {
		if winner != nil {
			done <- *winner
		}
	}
	r.Start()
	if err := r.Do("p1", Command{Kind: CmdResign}); err != nil {
		t.Fatalf("resign rejected: %v", err)
	}
	select {
	case w := <-done:
		if w != "p2" {
			t.Fatalf("winner = %s, want p2", w)
		}
	case <-time.After(time.Second):
		t.Fatal("game-over callback never fired")
	}
}
