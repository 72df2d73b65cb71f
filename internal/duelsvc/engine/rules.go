package engine

import (
	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

const StartingLife = 10

// Options toggles the two behaviors that differed between historical
// revisions of the game. The defaults keep the reference semantics: commits
// are trusted without a hand-membership check, and skills are match-long
// resources that survive round boundaries.
type Options struct {
	ValidateHandOnCommit bool
	ResetSkillsEachRound bool
}

// Engine validates and applies player actions to a MatchState. Every method
// takes the state by value and returns the full successor state; on error the
// input is returned unchanged, so a caller never persists a half-applied
// action.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

func Default() *Engine {
	return New(Options{})
}

// DealerForRound rotates the dealer every 3 rounds:
// rounds 1-3 P1, 4-6 P2, 7-9 P1, ...
func DealerForRound(round int) models.Side {
	if ((round-1)/3)%2 == 0 {
		return models.SidePlayer1
	}
	return models.SidePlayer2
}

// NewMatch deals a fresh match: shuffled deck, two cards per player,
// 10 life each, round 1 with P1 as dealer, waiting for commitments.
func (e *Engine) NewMatch(matchId, roomCode, player1Id, player2Id string) (models.MatchState, error) {
	deck := NewShuffledDeck()

	p1Hand, deck, err := Deal(deck, 2)
	if err != nil {
		return models.MatchState{}, err
	}
	p2Hand, deck, err := Deal(deck, 2)
	if err != nil {
		return models.MatchState{}, err
	}

	return models.MatchState{
		MatchId:           matchId,
		RoomCode:          roomCode,
		Player1Id:         player1Id,
		Player2Id:         player2Id,
		Deck:              deck,
		Player1Hand:       p1Hand,
		Player2Hand:       p2Hand,
		Player1Life:       StartingLife,
		Player2Life:       StartingLife,
		Round:             1,
		Dealer:            DealerForRound(1),
		Phase:             models.PhaseCommitment,
		RequiredBet:       1,
		AwaitingPlayer:    DealerForRound(1),
		Player1UsedSkills: []models.SkillType{},
		Player2UsedSkills: []models.SkillType{},
	}, nil
}

// CommitCard locks in the card a player will reveal this round. The card id
// is recorded as submitted; hand membership is only enforced when the engine
// was built with ValidateHandOnCommit. Once both sides have committed while
// the round is still in the commitment phase, the match moves to betting and
// the dealer acts first.
func (e *Engine) CommitCard(st models.MatchState, playerId string, cardId int) (models.MatchState, error) {
	side := st.SideOf(playerId)
	if side == models.SideNone {
		return st, apperr.Authorization("player %s is not in match %s", playerId, st.MatchId)
	}
	if !ValidCard(cardId) {
		return st, apperr.Validation("card id %d out of range", cardId)
	}
	if e.opts.ValidateHandOnCommit && !contains(hand(&st, side), cardId) {
		return st, apperr.IllegalAction("card %d is not in hand", cardId)
	}

	next := clone(st)
	if side == models.SidePlayer1 {
		next.Player1Committed = true
		next.Player1CommittedCard = &cardId
	} else {
		next.Player2Committed = true
		next.Player2CommittedCard = &cardId
	}

	// the commitment->betting transition happens exactly once per round
	if next.Phase == models.PhaseCommitment && next.Player1Committed && next.Player2Committed {
		next.Phase = models.PhaseBetting
		next.AwaitingPlayer = next.Dealer
	}

	return next, nil
}

// PlaceBet applies a call, raise or drop during the betting phase.
func (e *Engine) PlaceBet(st models.MatchState, playerId string, action models.BetAction, amount int) (models.MatchState, error) {
	side := st.SideOf(playerId)
	if side == models.SideNone {
		return st, apperr.Authorization("player %s is not in match %s", playerId, st.MatchId)
	}
	if st.Phase != models.PhaseBetting {
		return st, apperr.WrongPhase("match is not in betting phase (phase=%s)", st.Phase)
	}

	switch action {
	case models.BetCall, models.BetRaise, models.BetDrop:
	default:
		return st, apperr.Validation("invalid bet action %q", action)
	}

	if amount < 1 {
		amount = 1
	}

	next := clone(st)

	if action == models.BetDrop {
		// dropping forfeits the round to the opponent
		next.RoundWinner = side.Other()
		next.Phase = models.PhaseReveal
		setLastAction(&next, side, models.BetDrop)
		return next, nil
	}

	setLastAction(&next, side, action)
	setBetAmount(&next, side, amount)
	if action == models.BetRaise && amount > next.RequiredBet {
		next.RequiredBet = amount
	}
	next.AwaitingPlayer = side.Other()

	// primary resolution against the opponent's action as it stood when
	// this bet was read
	oppAction := lastAction(&st, side.Other())
	oppBet := betAmount(&st, side.Other())
	if oppAction == models.BetCall || oppAction == models.BetRaise {
		if (action == models.BetCall && oppAction == models.BetCall) ||
			(action == models.BetCall && oppAction == models.BetRaise && amount >= oppBet) {
			next.Phase = models.PhaseReveal
		}
	}

	// reconciliation pass: the primary check can miss when both bets land
	// near-simultaneously, so re-check the written amounts
	if next.Phase == models.PhaseBetting {
		a1, a2 := next.Player1LastAction, next.Player2LastAction
		acted := func(a models.BetAction) bool { return a == models.BetCall || a == models.BetRaise }
		if acted(a1) && acted(a2) && next.Player1BetAmount == next.Player2BetAmount {
			next.Phase = models.PhaseReveal
		}
	}

	return next, nil
}

// SkillResult reports what a skill use changed.
type SkillResult struct {
	UsedSkills    []models.SkillType `json:"used_skills"`
	DrawnCard     *int               `json:"drawn_card,omitempty"`
	DiscardedCard *int               `json:"discarded_card,omitempty"`
}

// UseSkill spends one of the five once-per-match skills. Change swaps the
// card at cardIndex for a fresh draw; the discarded card leaves play for
// good. The other skills only record their use, their table effect plays
// out client-side.
func (e *Engine) UseSkill(st models.MatchState, playerId string, skill models.SkillType, cardIndex int) (models.MatchState, SkillResult, error) {
	side := st.SideOf(playerId)
	if side == models.SideNone {
		return st, SkillResult{}, apperr.Authorization("player %s is not in match %s", playerId, st.MatchId)
	}
	if !models.ValidSkill(skill) {
		return st, SkillResult{}, apperr.Validation("invalid skill type %q", skill)
	}

	used := usedSkills(&st, side)
	for _, s := range used {
		if s == skill {
			return st, SkillResult{}, apperr.IllegalAction("skill %s already used", skill)
		}
	}

	next := clone(st)
	res := SkillResult{}

	if skill == models.SkillChange {
		h := hand(&next, side)
		if cardIndex < 0 || cardIndex >= len(h) {
			return st, SkillResult{}, apperr.Validation("invalid card index %d", cardIndex)
		}
		if len(next.Deck) == 0 {
			return st, SkillResult{}, apperr.IllegalAction("deck is empty")
		}

		discarded := h[cardIndex]
		h = append(h[:cardIndex], h[cardIndex+1:]...)

		drawn, rest, err := Deal(next.Deck, 1)
		if err != nil {
			return st, SkillResult{}, err
		}
		next.Deck = rest
		h = append(h, drawn[0])
		setHand(&next, side, h)

		res.DiscardedCard = &discarded
		res.DrawnCard = &drawn[0]
	}

	newUsed := append(append([]models.SkillType(nil), used...), skill)
	setUsedSkills(&next, side, newUsed)
	res.UsedSkills = newUsed

	return next, res, nil
}

// AdvanceRound settles the revealed round and deals into the next one:
// score the winner, recycle the committed cards, top both hands back up and
// reset the per-round fields. Idempotency under racing callers comes from
// the store's conditional write, not from re-checking here.
func (e *Engine) AdvanceRound(st models.MatchState, playerId string) (models.MatchState, error) {
	side := st.SideOf(playerId)
	if side == models.SideNone {
		return st, apperr.Authorization("player %s is not in match %s", playerId, st.MatchId)
	}
	if st.Phase != models.PhaseReveal {
		return st, apperr.WrongPhase("round is not ready to advance (phase=%s)", st.Phase)
	}

	next := clone(st)

	// a drop decided the round already; otherwise compare the reveals
	winner := next.RoundWinner
	if winner == models.SideNone && next.Player1CommittedCard != nil && next.Player2CommittedCard != nil {
		switch CompareCards(*next.Player1CommittedCard, *next.Player2CommittedCard) {
		case FirstWins:
			winner = models.SidePlayer1
		case SecondWins:
			winner = models.SidePlayer2
		}
	}

	// the stake is the loser's own bet, not a pot
	if winner != models.SideNone {
		loser := winner.Other()
		stake := betAmount(&next, loser)
		if winner == models.SidePlayer1 {
			next.Player1Life += stake
			next.Player2Life -= stake
		} else {
			next.Player2Life += stake
			next.Player1Life -= stake
		}
	}

	// committed cards leave the hands and go back into the deck
	if next.Player1CommittedCard != nil {
		next.Player1Hand = removeCard(next.Player1Hand, *next.Player1CommittedCard)
		next.Deck = Return(next.Deck, *next.Player1CommittedCard)
	}
	if next.Player2CommittedCard != nil {
		next.Player2Hand = removeCard(next.Player2Hand, *next.Player2CommittedCard)
		next.Deck = Return(next.Deck, *next.Player2CommittedCard)
	}

	next.Deck = Shuffle(next.Deck)

	dealt, rest, err := Deal(next.Deck, 2)
	if err != nil {
		return st, err
	}
	next.Player1Hand = append(next.Player1Hand, dealt[0])
	next.Player2Hand = append(next.Player2Hand, dealt[1])
	next.Deck = rest

	next.Round = st.Round + 1
	next.Dealer = DealerForRound(next.Round)
	next.Phase = models.PhaseCommitment
	next.AwaitingPlayer = next.Dealer
	next.RoundWinner = models.SideNone

	next.Player1Committed = false
	next.Player2Committed = false
	next.Player1CommittedCard = nil
	next.Player2CommittedCard = nil
	next.Player1BetAmount = 0
	next.Player2BetAmount = 0
	next.RequiredBet = 1
	next.Player1LastAction = models.BetNone
	next.Player2LastAction = models.BetNone

	if e.opts.ResetSkillsEachRound {
		next.Player1UsedSkills = []models.SkillType{}
		next.Player2UsedSkills = []models.SkillType{}
	}

	return next, nil
}

// clone deep-copies the mutable parts of a state so rule functions can edit
// freely without aliasing the caller's slices.
func clone(st models.MatchState) models.MatchState {
	next := st
	next.Deck = append([]int(nil), st.Deck...)
	next.Player1Hand = append([]int(nil), st.Player1Hand...)
	next.Player2Hand = append([]int(nil), st.Player2Hand...)
	next.Player1UsedSkills = append([]models.SkillType(nil), st.Player1UsedSkills...)
	next.Player2UsedSkills = append([]models.SkillType(nil), st.Player2UsedSkills...)
	if st.Player1CommittedCard != nil {
		v := *st.Player1CommittedCard
		next.Player1CommittedCard = &v
	}
	if st.Player2CommittedCard != nil {
		v := *st.Player2CommittedCard
		next.Player2CommittedCard = &v
	}
	return next
}

func hand(st *models.MatchState, side models.Side) []int {
	if side == models.SidePlayer1 {
		return st.Player1Hand
	}
	return st.Player2Hand
}

func setHand(st *models.MatchState, side models.Side, h []int) {
	if side == models.SidePlayer1 {
		st.Player1Hand = h
	} else {
		st.Player2Hand = h
	}
}

func betAmount(st *models.MatchState, side models.Side) int {
	if side == models.SidePlayer1 {
		return st.Player1BetAmount
	}
	return st.Player2BetAmount
}

func setBetAmount(st *models.MatchState, side models.Side, v int) {
	if side == models.SidePlayer1 {
		st.Player1BetAmount = v
	} else {
		st.Player2BetAmount = v
	}
}

func lastAction(st *models.MatchState, side models.Side) models.BetAction {
	if side == models.SidePlayer1 {
		return st.Player1LastAction
	}
	return st.Player2LastAction
}

func setLastAction(st *models.MatchState, side models.Side, a models.BetAction) {
	if side == models.SidePlayer1 {
		st.Player1LastAction = a
	} else {
		st.Player2LastAction = a
	}
}

func usedSkills(st *models.MatchState, side models.Side) []models.SkillType {
	if side == models.SidePlayer1 {
		return st.Player1UsedSkills
	}
	return st.Player2UsedSkills
}

func setUsedSkills(st *models.MatchState, side models.Side, s []models.SkillType) {
	if side == models.SidePlayer1 {
		st.Player1UsedSkills = s
	} else {
		st.Player2UsedSkills = s
	}
}

func contains(cards []int, id int) bool {
	for _, c := range cards {
		if c == id {
			return true
		}
	}
	return false
}

// removeCard drops the first occurrence of id.
func removeCard(cards []int, id int) []int {
	for i, c := range cards {
		if c == id {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	return cards
}
