package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/hakarigames/duel-services/internal/comm"
)

// Broker consumes match events from the duel service and pushes them to the
// sockets watching the affected match.
type Broker struct {
	Conn            *nats.Conn
	GetConnection   func(string) (*websocket.Conn, bool)
	GetMatchSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool),
	fncGetMatchSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:            conn,
		GetConnection:   fncGetConnection,
		GetMatchSockets: fncGetMatchSockets,
	}
}

// Subscribe consumes match events from the duel service.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "match-update":
		b.fanOutMatchEvent(message)
	default:
		log.Error("Unknown message")
		return
	}
}

// fanOutMatchEvent forwards the event to every socket watching the match.
func (b *Broker) fanOutMatchEvent(m *comm.WSMessage) {
	var event comm.MatchEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		log.Errorf("Error decoding match event: %s", err)
		return
	}

	sockets, ok := b.GetMatchSockets(event.MatchId)
	if !ok {
		return // nobody watching
	}

	for _, socketId := range sockets {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Errorf("Error writing to socket %s: %s", socketId, err)
			}
		}
	}
}
