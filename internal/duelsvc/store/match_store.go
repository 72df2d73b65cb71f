package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

const matchCollection = "match_states"

// MatchStore persists MatchState documents keyed by match_id. Writes after
// creation go through Update, which is conditional on the version the caller
// read; a lost race surfaces as a conflict, never as a silent overwrite.
type MatchStore struct {
	db *mongo.Database
}

func NewMatchStore(db *mongo.Database) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) Get(ctx context.Context, matchId string) (*models.MatchState, error) {
	st := &models.MatchState{}
	err := s.db.Collection(matchCollection).
		FindOne(ctx, bson.M{"match_id": matchId}).
		Decode(st)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // match not found
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchId, err)
	}
	return st, nil
}

func (s *MatchStore) Insert(ctx context.Context, st models.MatchState) error {
	_, err := s.db.Collection(matchCollection).InsertOne(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", st.MatchId, err)
	}
	return nil
}

// Update replaces the stored document with next, but only if the stored
// version still equals expectedVersion. next must already carry the bumped
// version and updated_at; the whole successor state lands in one atomic
// write, so a failed action never leaves partial fields behind.
func (s *MatchStore) Update(ctx context.Context, next models.MatchState, expectedVersion int64) error {
	filter := bson.M{
		"match_id": next.MatchId,
		"version":  expectedVersion,
	}

	res, err := s.db.Collection(matchCollection).ReplaceOne(ctx, filter, next)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", next.MatchId, err)
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict("match %s was modified concurrently", next.MatchId)
	}
	return nil
}

func (s *MatchStore) Delete(ctx context.Context, matchId string) error {
	_, err := s.db.Collection(matchCollection).DeleteOne(ctx, bson.M{"match_id": matchId})
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchId, err)
	}
	return nil
}
