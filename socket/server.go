package socket

import (
	"log"

	"battles_server/models"

	socketio "github.com/googollee/go-socket.io"
)

const matchesRoom = "matches"

// NewSocketServer initializes the Socket.IO server. Clients emit
// "subscribeMatches" once and then receive match lifecycle events, so
// list screens refresh without polling.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "subscribeMatches", func(c socketio.Conn) {
		c.Join(matchesRoom)
		log.Printf("👥 Socket %s subscribed to match updates\n", c.ID())
	})

	server.OnEvent("/", "unsubscribeMatches", func(c socketio.Conn) {
		c.Leave(matchesRoom)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}

// Broadcaster fans match lifecycle events out to subscribed clients.
// It satisfies the match service's Notifier interface.
type Broadcaster struct {
	Server *socketio.Server
}

func NewBroadcaster(server *socketio.Server) *Broadcaster {
	return &Broadcaster{Server: server}
}

func (b *Broadcaster) MatchCreated(match models.Match) {
	b.Server.BroadcastToRoom("/", matchesRoom, "matchCreated", match)
}

func (b *Broadcaster) MatchUpdated(match models.Match) {
	b.Server.BroadcastToRoom("/", matchesRoom, "matchUpdated", match)
}

func (b *Broadcaster) MatchArchived(matchID string) {
	b.Server.BroadcastToRoom("/", matchesRoom, "matchArchived", map[string]string{"matchId": matchID})
}
