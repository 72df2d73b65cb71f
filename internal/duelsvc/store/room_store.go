package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

const roomCollection = "rooms"

// RoomStore persists matchmaking rooms keyed by room_code. Expiry is handled
// by the TTL index on expires_at (see internal/db).
type RoomStore struct {
	db *mongo.Database
}

func NewRoomStore(db *mongo.Database) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) Get(ctx context.Context, roomCode string) (*models.Room, error) {
	room := &models.Room{}
	err := s.db.Collection(roomCollection).
		FindOne(ctx, bson.M{"room_code": roomCode}).
		Decode(room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // room not found
		}
		return nil, fmt.Errorf("failed to get room %s: %w", roomCode, err)
	}
	return room, nil
}

func (s *RoomStore) Insert(ctx context.Context, room models.Room) error {
	_, err := s.db.Collection(roomCollection).InsertOne(ctx, room)
	if err != nil {
		return fmt.Errorf("failed to insert room %s: %w", room.RoomCode, err)
	}
	return nil
}

// Claim flips a waiting room to matched for guestPlayerId. The status filter
// makes the claim atomic: two guests racing for the same code cannot both
// win. Returns false when the room is absent or already matched.
func (s *RoomStore) Claim(ctx context.Context, roomCode, guestPlayerId string) (bool, error) {
	filter := bson.M{
		"room_code": roomCode,
		"status":    models.RoomStatusWaiting,
	}
	update := bson.M{
		"$set": bson.M{
			"guest_player_id": guestPlayerId,
			"status":          models.RoomStatusMatched,
		},
	}

	res, err := s.db.Collection(roomCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to claim room %s: %w", roomCode, err)
	}
	return res.MatchedCount > 0, nil
}

func (s *RoomStore) Delete(ctx context.Context, roomCode string) error {
	_, err := s.db.Collection(roomCollection).DeleteOne(ctx, bson.M{"room_code": roomCode})
	if err != nil {
		return fmt.Errorf("failed to delete room %s: %w", roomCode, err)
	}
	return nil
}
