package socket

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"

	"github.com/tycoon-games/tycoon-backend/app/models"
	"github.com/tycoon-games/tycoon-backend/platform/cache"
	"github.com/tycoon-games/tycoon-backend/platform/database"
	"github.com/tycoon-games/tycoon-backend/platform/game"
	"github.com/tycoon-games/tycoon-backend/platform/logging"
	"github.com/tycoon-games/tycoon-backend/platform/queries"
)

// TODO add room chat

func CreateSocketIOServer() {

	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	reg := newRegistry()

	// broadcaster fans engine events out: broadcast to the room, or a
	// targeted emit for a single player's socket.
	broadcaster := func(gameID string) func([]game.Event) {
		return func(events []game.Event) {
			for _, ev := range events {
				var payload string
				if str, ok := ev.Data.(string); ok {
					payload = str
				} else if ev.Data != nil {
					raw, err := json.Marshal(ev.Data)
					if err != nil {
						logging.Game(gameID).Error("marshal event: ", err)
						continue
					}
					payload = string(raw)
				}
				if ev.Target != nil {
					if c, ok := reg.conn(string(*ev.Target)); ok {
						c.Emit(ev.Name, payload)
					}
				} else {
					server.BroadcastToRoom("/", gameID, ev.Name, payload)
				}
			}
		}
	}

	// sess pulls the authenticated session off the connection; nil when
	// the socket never joined a game.
	sess := func(s socketio.Conn) *session {
		if ctx, ok := s.Context().(*session); ok {
			return ctx
		}
		return nil
	}

	// do routes one validated command into the sender's room. Rule
	// rejections go back to the sender only; the room broadcasts
	// everything else.
	do := func(s socketio.Conn, ts int64, cmd game.Command) {
		ss := sess(s)
		if ss == nil {
			s.Emit("error-message", "join a game first")
			return
		}
		if err := ss.checkTs(ts); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		room := reg.room(ss.GameID)
		if room == nil {
			s.Emit("error-message", "the game has not started")
			return
		}
		if err := room.Do(game.PlayerID(ss.UserID), cmd); err != nil {
			s.Emit("error-message", err.Error())
		}
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(nil)
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var msg joinMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			s.Emit("failed")
			return
		}
		userID, err := VerifyToken(msg.Token)
		if err != nil {
			s.Emit("error-message", "user not authenticated")
			s.Emit("failed")
			return
		}
		gameRow, err := queries.GetGame(msg.GameID, db)
		if err != nil {
			s.Emit("error-message", "invalid game")
			s.Emit("failed")
			return
		}
		user, err := queries.GetUserData(userID, db)
		if err != nil {
			s.Emit("error-message", "user retrieval failed")
			s.Emit("failed")
			return
		}

		conn := pool.Get()
		defer conn.Close()

		// reconnect path: the game is running and the user has a seat
		if room := reg.room(msg.GameID); room != nil {
			seatRoom, _ := cache.UserRoom(userID, conn)
			if seatRoom != msg.GameID {
				s.Emit("error-message", "the game is already running")
				s.Emit("failed")
				return
			}
			reg.bind(userID, s)
			s.Join(msg.GameID)
			s.SetContext(&session{UserID: userID, Username: user.Email, GameID: msg.GameID})
			snap, err := room.Snapshot()
			if err == nil {
				raw, _ := json.Marshal(snap)
				s.Emit("state-update", string(raw))
			}
			logging.Game(msg.GameID).Info(user.Email, " reconnected")
			return
		}

		if gameRow.Status != models.GameOpen {
			s.Emit("error-message", "the game is not open")
			s.Emit("failed")
			return
		}
		seats, err := cache.SeatCount(msg.GameID, conn)
		if err != nil {
			s.Emit("error-message", "lobby unavailable")
			s.Emit("failed")
			return
		}
		capacity := gameRow.Capacity
		if capacity < 2 || capacity > 4 {
			capacity = 4
		}
		if seats >= capacity {
			s.Emit("error-message", "the game is full")
			s.Emit("failed")
			return
		}

		err = queries.CreatePlayer(models.Player{
			Game_id:  msg.GameID,
			User_id:  userID,
			Username: user.Email,
			Seat:     seats,
		}, db)
		if err != nil {
			s.Emit("error-message", "failed creating player")
			s.Emit("failed")
			return
		}
		count, err := cache.ReserveSeat(msg.GameID, userID, conn)
		if err != nil {
			s.Emit("error-message", "lobby unavailable")
			s.Emit("failed")
			return
		}

		reg.bind(userID, s)
		s.Join(msg.GameID)
		s.SetContext(&session{UserID: userID, Username: user.Email, GameID: msg.GameID})
		server.BroadcastToRoom("/", msg.GameID, "player-join", user.Email)
		s.Emit("joined-game", strconv.Itoa(count))
		logging.Game(msg.GameID).Info(user.Email, " joined")
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		ss := sess(s)
		if ss == nil {
			return
		}
		conn := pool.Get()
		defer conn.Close()

		if room := reg.room(ss.GameID); room != nil {
			// leaving a live game is resigning it
			room.Do(game.PlayerID(ss.UserID), game.Command{Kind: game.CmdResign})
		} else {
			queries.DeletePlayer(ss.UserID, ss.GameID, db)
			left, _ := cache.ReleaseSeat(ss.GameID, ss.UserID, conn)
			if left == 0 {
				// nobody waiting; drop the abandoned lobby
				queries.CleanupGame(ss.GameID, db)
			}
		}
		server.BroadcastToRoom("/", ss.GameID, "player-left", ss.Username)
		reg.unbind(ss.UserID)
		s.Leave(ss.GameID)
		s.SetContext(nil)
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		ss := sess(s)
		if ss == nil {
			s.Emit("error-message", "join a game first")
			return
		}
		gameID := ss.GameID
		conn := pool.Get()
		defer conn.Close()

		if reg.room(gameID) != nil {
			s.Emit("error-message", "the game already started")
			return
		}
		roster, err := queries.Roster(gameID, db)
		if err != nil || len(roster) < 2 {
			s.Emit("error-message", "unable to start game")
			logging.Game(gameID).Warn("start rejected: roster too small")
			return
		}

		players := make([]game.Player, 0, len(roster))
		for _, row := range roster {
			players = append(players, game.Player{
				ID:       game.PlayerID(row.User_id),
				Username: row.Username,
			})
		}

		room := game.NewRoom(gameID, players, time.Now().UnixNano())
		room.Broadcast = broadcaster(gameID)
		room.OnGameOver = func(winner *game.PlayerID) {
			winnerID := ""
			if winner != nil {
				winnerID = string(*winner)
			}
			if err := queries.RecordResult(gameID, winnerID, db); err != nil {
				logging.Game(gameID).Error("record result: ", err)
			}
			c := pool.Get()
			defer c.Close()
			if err := cache.Cleanup(gameID, c); err != nil {
				logging.Game(gameID).Error("cache cleanup: ", err)
			}
			reg.removeRoom(gameID)
			logging.Game(gameID).Info("game over, winner=", winnerID)
		}

		if !reg.addRoom(room) {
			s.Emit("error-message", "the game already started")
			return
		}
		if err := queries.SetGameStatus(gameID, models.GameInProgress, db); err != nil {
			logging.Game(gameID).Error("set status: ", err)
		}
		if err := cache.MarkLive(gameID, conn); err != nil {
			logging.Game(gameID).Error("mark live: ", err)
		}
		room.Start()
		logging.Game(gameID).Info("game started with ", len(players), " players")
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdRoll})
	})

	server.OnEvent("/", "request-buy", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdBuy})
	})

	server.OnEvent("/", "decline-buy", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdDeclineBuy})
	})

	server.OnEvent("/", "bid", func(s socketio.Conn, jsonStr string) {
		var msg bidMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdBid, Amount: msg.Amount})
	})

	server.OnEvent("/", "pass-bid", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdPassBid})
	})

	server.OnEvent("/", "propose-trade", func(s socketio.Conn, jsonStr string) {
		var msg tradeMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{
			Kind:     game.CmdProposeTrade,
			Receiver: game.PlayerID(msg.Receiver),
			Offer:    game.TradeOffer{Cash: msg.Offer.Cash, Properties: msg.Offer.Properties, JailCards: msg.Offer.JailCards},
			Ask:      game.TradeOffer{Cash: msg.Ask.Cash, Properties: msg.Ask.Properties, JailCards: msg.Ask.JailCards},
		})
	})

	server.OnEvent("/", "update-trade", func(s socketio.Conn, jsonStr string) {
		var msg tradeMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{
			Kind:  game.CmdUpdateTrade,
			Offer: game.TradeOffer{Cash: msg.Offer.Cash, Properties: msg.Offer.Properties, JailCards: msg.Offer.JailCards},
			Ask:   game.TradeOffer{Cash: msg.Ask.Cash, Properties: msg.Ask.Properties, JailCards: msg.Ask.JailCards},
		})
	})

	server.OnEvent("/", "accept-trade", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdAcceptTrade})
	})

	server.OnEvent("/", "decline-trade", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdDeclineTrade})
	})

	server.OnEvent("/", "cancel-trade", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdCancelTrade})
	})

	server.OnEvent("/", "buy-house", func(s socketio.Conn, jsonStr string) {
		var msg buildMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdBuild, Pos: msg.Pos, Hotel: msg.Hotel})
	})

	server.OnEvent("/", "sell-building", func(s socketio.Conn, jsonStr string) {
		var msg posMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdSellBuilding, Pos: msg.Pos})
	})

	server.OnEvent("/", "mortgage", func(s socketio.Conn, jsonStr string) {
		var msg posMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdMortgage, Pos: msg.Pos})
	})

	server.OnEvent("/", "unmortgage", func(s socketio.Conn, jsonStr string) {
		var msg posMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdUnmortgage, Pos: msg.Pos})
	})

	server.OnEvent("/", "pay-out-jail", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdJailPayFine})
	})

	server.OnEvent("/", "use-jail-card", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdJailUseCard})
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		var msg baseMsg
		if err := decode(jsonStr, &msg); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		do(s, msg.Ts, game.Command{Kind: game.CmdEndTurn})
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logging.Error("socket error: ", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		ss := sess(s)
		if ss == nil {
			return
		}
		// a dropped connection mid-game is a forced exit, queued like
		// any other command
		if room := reg.room(ss.GameID); room != nil {
			room.Do(game.PlayerID(ss.UserID), game.Command{Kind: game.CmdResign})
		} else {
			conn := pool.Get()
			defer conn.Close()
			queries.DeletePlayer(ss.UserID, ss.GameID, db)
			left, _ := cache.ReleaseSeat(ss.GameID, ss.UserID, conn)
			if left == 0 {
				queries.CleanupGame(ss.GameID, db)
			}
		}
		server.BroadcastToRoom("/", ss.GameID, "player-left", ss.Username)
		reg.unbind(ss.UserID)
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	})

	addr := os.Getenv("SOCKET_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	http.ListenAndServe(addr, c.Handler(mux))
}
