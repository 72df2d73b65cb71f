package models

import "time"

const (
	RoomStatusWaiting = "waiting"
	RoomStatusMatched = "matched"
)

// Room is a matchmaking record. MongoDB drops it via the TTL index on
// expires_at once the room sits unused past its lifetime.
type Room struct {
	RoomCode      string    `bson:"room_code" json:"room_code"`
	HostPlayerId  string    `bson:"host_player_id" json:"host_player_id"`
	GuestPlayerId string    `bson:"guest_player_id,omitempty" json:"guest_player_id,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     int64     `bson:"created_at" json:"created_at"`
	ExpiresAt     time.Time `bson:"expires_at" json:"expires_at"`
}
