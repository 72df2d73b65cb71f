package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

const (
	roomLifetime   = 15 * time.Minute
	codeGenRetries = 5
)

// RoomStorer is the room store surface the service depends on.
type RoomStorer interface {
	Get(ctx context.Context, roomCode string) (*models.Room, error)
	Insert(ctx context.Context, room models.Room) error
	Claim(ctx context.Context, roomCode, guestPlayerId string) (bool, error)
	Delete(ctx context.Context, roomCode string) error
}

type RoomService struct {
	roomStore RoomStorer
}

func NewRoomService(roomStore RoomStorer) *RoomService {
	return &RoomService{roomStore: roomStore}
}

// Create opens a waiting room under a fresh 6-digit code. The room expires
// on its own after 15 minutes if nobody joins.
func (s *RoomService) Create(ctx context.Context, hostPlayerId string) (*models.Room, error) {
	if hostPlayerId == "" {
		return nil, apperr.Validation("playerId is required")
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room := models.Room{
		RoomCode:     code,
		HostPlayerId: hostPlayerId,
		Status:       models.RoomStatusWaiting,
		CreatedAt:    now.Unix(),
		ExpiresAt:    now.Add(roomLifetime),
	}

	if err := s.roomStore.Insert(ctx, room); err != nil {
		return nil, apperr.Internal("failed to create room", err)
	}

	return &room, nil
}

// Check reports the room's matchmaking status; the host polls this until a
// guest shows up.
func (s *RoomService) Check(ctx context.Context, roomCode string) (*models.Room, error) {
	if roomCode == "" {
		return nil, apperr.Validation("roomCode is required")
	}

	room, err := s.roomStore.Get(ctx, roomCode)
	if err != nil {
		return nil, apperr.Internal("failed to load room", err)
	}
	if room == nil {
		return nil, apperr.NotFound("room %s not found", roomCode)
	}
	return room, nil
}

// Join claims a waiting room for the guest. The claim is conditional on the
// room still waiting, so two guests cannot both match against the same host.
func (s *RoomService) Join(ctx context.Context, roomCode, guestPlayerId string) (*models.Room, error) {
	if roomCode == "" || guestPlayerId == "" {
		return nil, apperr.Validation("roomCode and playerId are required")
	}

	room, err := s.roomStore.Get(ctx, roomCode)
	if err != nil {
		return nil, apperr.Internal("failed to load room", err)
	}
	if room == nil {
		return nil, apperr.NotFound("room %s not found", roomCode)
	}
	if room.Status != models.RoomStatusWaiting {
		return nil, apperr.IllegalAction("room %s already matched", roomCode)
	}

	claimed, err := s.roomStore.Claim(ctx, roomCode, guestPlayerId)
	if err != nil {
		return nil, apperr.Internal("failed to claim room", err)
	}
	if !claimed {
		return nil, apperr.Conflict("room %s was claimed concurrently", roomCode)
	}

	room.GuestPlayerId = guestPlayerId
	room.Status = models.RoomStatusMatched
	return room, nil
}

func (s *RoomService) Cancel(ctx context.Context, roomCode string) error {
	if roomCode == "" {
		return apperr.Validation("roomCode is required")
	}
	if err := s.roomStore.Delete(ctx, roomCode); err != nil {
		return apperr.Internal("failed to delete room", err)
	}
	return nil
}

func (s *RoomService) generateUniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenRetries; i++ {
		code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
		existing, err := s.roomStore.Get(ctx, code)
		if err != nil {
			return "", apperr.Internal("failed to check room code", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", apperr.Internal("failed to generate unique room code", nil)
}
