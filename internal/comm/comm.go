package comm

import (
	"encoding/json"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch", "match-update"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// WatchRequest is sent by a web client that wants push updates for a match.
type WatchRequest struct {
	MatchId  string `json:"match_id"`
	PlayerId string `json:"player_id"`
}

// MatchEvent is published by the duel service after every successful
// state mutation and relayed to watching sockets.
type MatchEvent struct {
	MatchId   string `json:"match_id"`
	Round     int    `json:"round"`
	Phase     string `json:"phase"`
	Action    string `json:"action"` // "start", "commit", "bet", "skill", "advance"
	UpdatedAt int64  `json:"updated_at"`
}
