package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/hakarigames/duel-services/internal/comm"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

// TopicMatchEvents carries match-update events to the socket service.
const TopicMatchEvents = "duel.events"

// Broker publishes match events so the socket service can push them to
// watching clients. Delivery is best-effort; the HTTP response to the acting
// player stays authoritative and the other player may always poll.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishMatchUpdate fans out a state change. A nil broker or a publish
// failure only logs; the action already succeeded.
func (b *Broker) PublishMatchUpdate(st *models.MatchState, action string) {
	if b == nil || b.Conn == nil || st == nil {
		return
	}

	event := comm.MatchEvent{
		MatchId:   st.MatchId,
		Round:     st.Round,
		Phase:     string(st.Phase),
		Action:    action,
		UpdatedAt: st.UpdatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal match event: %v", err)
		return
	}

	msg := comm.WSMessage{Type: "match-update", Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	if err := b.Conn.Publish(TopicMatchEvents, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", TopicMatchEvents, err)
	}
}
