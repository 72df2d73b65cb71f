package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/engine"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

// MatchStorer is the slice of the persistent store the match service needs.
// It is an interface so tests can drop in a fake instead of MongoDB.
type MatchStorer interface {
	Get(ctx context.Context, matchId string) (*models.MatchState, error)
	Insert(ctx context.Context, st models.MatchState) error
	Update(ctx context.Context, next models.MatchState, expectedVersion int64) error
	Delete(ctx context.Context, matchId string) error
}

// RoomGetter is what StartMatch needs from the room store.
type RoomGetter interface {
	Get(ctx context.Context, roomCode string) (*models.Room, error)
}

// MatchService runs every player action as one read-compute-write cycle:
// load the current state, let the rule engine produce the full successor,
// persist it conditionally on the version read. A losing writer gets a
// conflict back and must re-issue; nothing is retried or overwritten here.
type MatchService struct {
	matchStore MatchStorer
	roomStore  RoomGetter
	rules      *engine.Engine
}

func NewMatchService(matchStore MatchStorer, roomStore RoomGetter, rules *engine.Engine) *MatchService {
	return &MatchService{
		matchStore: matchStore,
		roomStore:  roomStore,
		rules:      rules,
	}
}

// StartMatch creates a match for the two players of a matched room.
func (s *MatchService) StartMatch(ctx context.Context, roomCode string) (*models.MatchState, error) {
	room, err := s.roomStore.Get(ctx, roomCode)
	if err != nil {
		return nil, apperr.Internal("failed to load room", err)
	}
	if room == nil {
		return nil, apperr.NotFound("room %s not found", roomCode)
	}
	if room.Status != models.RoomStatusMatched {
		return nil, apperr.IllegalAction("room %s is not matched yet", roomCode)
	}

	matchId := fmt.Sprintf("game_%d_%06d", time.Now().Unix(), 100000+rand.Intn(900000))

	st, err := s.rules.NewMatch(matchId, roomCode, room.HostPlayerId, room.GuestPlayerId)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	st.Version = 1
	st.CreatedAt = now
	st.UpdatedAt = now

	if err := s.matchStore.Insert(ctx, st); err != nil {
		return nil, apperr.Internal("failed to persist match", err)
	}

	return &st, nil
}

func (s *MatchService) CommitCard(ctx context.Context, matchId, playerId string, cardId int) (*models.MatchState, error) {
	return s.mutate(ctx, matchId, func(cur models.MatchState) (models.MatchState, error) {
		return s.rules.CommitCard(cur, playerId, cardId)
	})
}

func (s *MatchService) PlaceBet(ctx context.Context, matchId, playerId string, action models.BetAction, amount int) (*models.MatchState, error) {
	return s.mutate(ctx, matchId, func(cur models.MatchState) (models.MatchState, error) {
		return s.rules.PlaceBet(cur, playerId, action, amount)
	})
}

func (s *MatchService) UseSkill(ctx context.Context, matchId, playerId string, skill models.SkillType, cardIndex int) (*models.MatchState, *engine.SkillResult, error) {
	var res engine.SkillResult
	st, err := s.mutate(ctx, matchId, func(cur models.MatchState) (models.MatchState, error) {
		next, r, err := s.rules.UseSkill(cur, playerId, skill, cardIndex)
		if err != nil {
			return cur, err
		}
		res = r
		return next, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return st, &res, nil
}

func (s *MatchService) AdvanceRound(ctx context.Context, matchId, playerId string) (*models.MatchState, error) {
	return s.mutate(ctx, matchId, func(cur models.MatchState) (models.MatchState, error) {
		return s.rules.AdvanceRound(cur, playerId)
	})
}

// GetState returns the caller-scoped projection of the match.
func (s *MatchService) GetState(ctx context.Context, matchId, playerId string) (*models.PlayerView, error) {
	cur, err := s.load(ctx, matchId)
	if err != nil {
		return nil, err
	}
	if cur.SideOf(playerId) == models.SideNone {
		return nil, apperr.Authorization("player %s is not in match %s", playerId, matchId)
	}
	view := cur.ViewFor(playerId)
	return &view, nil
}

func (s *MatchService) load(ctx context.Context, matchId string) (*models.MatchState, error) {
	cur, err := s.matchStore.Get(ctx, matchId)
	if err != nil {
		return nil, apperr.Internal("failed to load match", err)
	}
	if cur == nil {
		return nil, apperr.NotFound("match %s not found", matchId)
	}
	return cur, nil
}

// mutate is the single read-compute-write path every action goes through.
func (s *MatchService) mutate(ctx context.Context, matchId string, apply func(models.MatchState) (models.MatchState, error)) (*models.MatchState, error) {
	cur, err := s.load(ctx, matchId)
	if err != nil {
		return nil, err
	}

	next, err := apply(*cur)
	if err != nil {
		return nil, err
	}

	next.Version = cur.Version + 1
	next.UpdatedAt = time.Now().Unix()

	if err := s.matchStore.Update(ctx, next, cur.Version); err != nil {
		return nil, err
	}

	return &next, nil
}
