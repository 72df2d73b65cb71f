package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

// revealState builds a round-1 state sitting in the reveal phase with known
// cards and bets, ready for AdvanceRound.
func revealState() models.MatchState {
	c1, c2 := 0, 1 // ace vs two
	return models.MatchState{
		MatchId:              "m1",
		Player1Id:            "p1",
		Player2Id:            "p2",
		Deck:                 []int{10, 11, 12, 20, 21, 22},
		Player1Hand:          []int{0, 5},
		Player2Hand:          []int{1, 6},
		Player1Life:          10,
		Player2Life:          10,
		Round:                1,
		Dealer:               models.SidePlayer1,
		Phase:                models.PhaseReveal,
		Player1Committed:     true,
		Player2Committed:     true,
		Player1CommittedCard: &c1,
		Player2CommittedCard: &c2,
		Player1BetAmount:     1,
		Player2BetAmount:     1,
		RequiredBet:          1,
		Player1LastAction:    models.BetCall,
		Player2LastAction:    models.BetCall,
		Player1UsedSkills:    []models.SkillType{models.SkillScan},
		Player2UsedSkills:    []models.SkillType{},
		AwaitingPlayer:       models.SidePlayer2,
	}
}

// bettingState builds a state where both players committed and betting is
// open with the dealer to act.
func bettingState() models.MatchState {
	st := revealState()
	st.Phase = models.PhaseBetting
	st.Player1BetAmount = 0
	st.Player2BetAmount = 0
	st.Player1LastAction = models.BetNone
	st.Player2LastAction = models.BetNone
	st.AwaitingPlayer = st.Dealer
	return st
}

func cardSum(st models.MatchState) int {
	return len(st.Deck) + len(st.Player1Hand) + len(st.Player2Hand)
}

func TestNewMatchDealsTwoCardsEach(t *testing.T) {
	e := Default()
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)

	assert.Len(t, st.Player1Hand, 2)
	assert.Len(t, st.Player2Hand, 2)
	assert.Len(t, st.Deck, DeckSize-4)
	assert.Equal(t, StartingLife, st.Player1Life)
	assert.Equal(t, StartingLife, st.Player2Life)
	assert.Equal(t, 1, st.Round)
	assert.Equal(t, models.SidePlayer1, st.Dealer)
	assert.Equal(t, models.PhaseCommitment, st.Phase)
	assert.Equal(t, 1, st.RequiredBet)

	seen := map[int]bool{}
	for _, id := range append(append(append([]int{}, st.Deck...), st.Player1Hand...), st.Player2Hand...) {
		assert.False(t, seen[id], "card %d dealt twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, DeckSize)
}

func TestCommitTransitionsToBettingOnceBothCommit(t *testing.T) {
	e := Default()
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)

	st, err = e.CommitCard(st, "p1", st.Player1Hand[0])
	require.NoError(t, err)
	assert.True(t, st.Player1Committed)
	assert.Equal(t, models.PhaseCommitment, st.Phase, "one commit must not open betting")

	st, err = e.CommitCard(st, "p2", st.Player2Hand[0])
	require.NoError(t, err)
	assert.True(t, st.Player2Committed)
	assert.Equal(t, models.PhaseBetting, st.Phase)
	assert.Equal(t, st.Dealer, st.AwaitingPlayer)
}

func TestCommitRejectsOutsiders(t *testing.T) {
	e := Default()
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)

	_, err = e.CommitCard(st, "intruder", 0)
	require.Error(t, err)
}

func TestCommitTrustsCardByDefault(t *testing.T) {
	e := Default()
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)

	// pick an id guaranteed to be in the deck, not the hand
	notInHand := st.Deck[0]
	st, err = e.CommitCard(st, "p1", notInHand)
	require.NoError(t, err)
	require.NotNil(t, st.Player1CommittedCard)
	assert.Equal(t, notInHand, *st.Player1CommittedCard)
}

func TestCommitHandValidationOption(t *testing.T) {
	e := New(Options{ValidateHandOnCommit: true})
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)

	_, err = e.CommitCard(st, "p1", st.Deck[0])
	require.Error(t, err)

	st, err = e.CommitCard(st, "p1", st.Player1Hand[1])
	require.NoError(t, err)
	assert.True(t, st.Player1Committed)
}

func TestBetBothCallsCloseBetting(t *testing.T) {
	e := Default()
	st := bettingState()

	st, err := e.PlaceBet(st, "p1", models.BetCall, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseBetting, st.Phase)
	assert.Equal(t, models.SidePlayer2, st.AwaitingPlayer)

	st, err = e.PlaceBet(st, "p2", models.BetCall, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseReveal, st.Phase)
}

func TestBetRaiseThenMatchingCallCloses(t *testing.T) {
	e := Default()
	st := bettingState()

	st, err := e.PlaceBet(st, "p1", models.BetRaise, 3)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseBetting, st.Phase)
	assert.Equal(t, 3, st.RequiredBet)

	st, err = e.PlaceBet(st, "p2", models.BetCall, 3)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseReveal, st.Phase)
}

func TestBetShortCallLeavesBettingOpen(t *testing.T) {
	e := Default()
	st := bettingState()

	st, err := e.PlaceBet(st, "p1", models.BetRaise, 3)
	require.NoError(t, err)

	st, err = e.PlaceBet(st, "p2", models.BetCall, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseBetting, st.Phase, "call below the raise must not close the round")
}

func TestBetDropForfeitsRound(t *testing.T) {
	e := Default()
	st := bettingState()

	st, err := e.PlaceBet(st, "p2", models.BetDrop, 0)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseReveal, st.Phase)
	assert.Equal(t, models.SidePlayer1, st.RoundWinner)
	assert.Equal(t, models.BetDrop, st.Player2LastAction)
}

func TestBetOutsideBettingPhase(t *testing.T) {
	e := Default()
	st := bettingState()
	st.Phase = models.PhaseCommitment

	_, err := e.PlaceBet(st, "p1", models.BetCall, 1)
	require.Error(t, err)
}

func TestBetAmountDefaultsToOne(t *testing.T) {
	e := Default()
	st := bettingState()

	st, err := e.PlaceBet(st, "p1", models.BetCall, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Player1BetAmount)
}

func TestRequiredBetOnlyIncreases(t *testing.T) {
	e := Default()
	st := bettingState()

	st, err := e.PlaceBet(st, "p1", models.BetRaise, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, st.RequiredBet)

	st, err = e.PlaceBet(st, "p2", models.BetRaise, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, st.RequiredBet, "a lower raise must not shrink the required bet")
}

func TestSkillIsOneTimePerMatch(t *testing.T) {
	e := Default()
	st := bettingState()
	st.Player1UsedSkills = []models.SkillType{}

	st, res, err := e.UseSkill(st, "p1", models.SkillScan, -1)
	require.NoError(t, err)
	assert.Equal(t, []models.SkillType{models.SkillScan}, res.UsedSkills)

	_, _, err = e.UseSkill(st, "p1", models.SkillScan, -1)
	require.Error(t, err)
	assert.Len(t, st.Player1UsedSkills, 1, "failed reuse must not grow the set")

	// the same skill stays available to the other player
	_, _, err = e.UseSkill(st, "p2", models.SkillScan, -1)
	require.NoError(t, err)
}

func TestSkillRejectsUnknownType(t *testing.T) {
	e := Default()
	st := bettingState()

	_, _, err := e.UseSkill(st, "p1", models.SkillType("Teleport"), -1)
	require.Error(t, err)
}

func TestChangeSkillSwapsCard(t *testing.T) {
	e := Default()
	st := bettingState()
	st.Player1UsedSkills = []models.SkillType{}
	before := cardSum(st)

	next, res, err := e.UseSkill(st, "p1", models.SkillChange, 0)
	require.NoError(t, err)

	require.NotNil(t, res.DiscardedCard)
	require.NotNil(t, res.DrawnCard)
	assert.Equal(t, 0, *res.DiscardedCard)
	assert.Len(t, next.Player1Hand, 2)
	assert.NotContains(t, next.Player1Hand, 0)
	assert.Contains(t, next.Player1Hand, *res.DrawnCard)

	// the discarded card leaves play for good
	assert.Equal(t, before-1, cardSum(next))
}

func TestChangeSkillIndexOutOfBounds(t *testing.T) {
	e := Default()
	st := bettingState()
	st.Player1UsedSkills = []models.SkillType{}

	_, _, err := e.UseSkill(st, "p1", models.SkillChange, 5)
	require.Error(t, err)
	assert.Empty(t, st.Player1UsedSkills, "failed change must not burn the skill")
}

func TestChangeSkillEmptyDeck(t *testing.T) {
	e := Default()
	st := bettingState()
	st.Player1UsedSkills = []models.SkillType{}
	st.Deck = []int{}

	_, _, err := e.UseSkill(st, "p1", models.SkillChange, 0)
	require.Error(t, err)
}

func TestCardCountConstantWithoutChangeSkill(t *testing.T) {
	e := Default()
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)
	sum := cardSum(st)

	st, err = e.CommitCard(st, "p1", st.Player1Hand[0])
	require.NoError(t, err)
	st, err = e.CommitCard(st, "p2", st.Player2Hand[0])
	require.NoError(t, err)
	st, err = e.PlaceBet(st, "p1", models.BetCall, 1)
	require.NoError(t, err)
	st, err = e.PlaceBet(st, "p2", models.BetCall, 1)
	require.NoError(t, err)

	assert.Equal(t, sum, cardSum(st))
}

func TestAdvanceRoundSettlesAceVersusTwo(t *testing.T) {
	e := Default()
	st := revealState()
	before := cardSum(st)

	next, err := e.AdvanceRound(st, "p1")
	require.NoError(t, err)

	// two beats ace: P2 takes P1's bet of 1
	assert.Equal(t, 9, next.Player1Life)
	assert.Equal(t, 11, next.Player2Life)

	assert.Equal(t, 2, next.Round)
	assert.Equal(t, models.SidePlayer1, next.Dealer, "dealer holds for rounds 1-3")
	assert.Equal(t, models.PhaseCommitment, next.Phase)
	assert.Equal(t, models.SidePlayer1, next.AwaitingPlayer)

	// committed cards went back to the deck, one fresh card each
	assert.Len(t, next.Player1Hand, 2)
	assert.Len(t, next.Player2Hand, 2)
	assert.NotContains(t, next.Player1Hand, 0)
	assert.NotContains(t, next.Player2Hand, 1)
	assert.Equal(t, before, cardSum(next))

	// per-round fields reset
	assert.False(t, next.Player1Committed)
	assert.False(t, next.Player2Committed)
	assert.Nil(t, next.Player1CommittedCard)
	assert.Nil(t, next.Player2CommittedCard)
	assert.Equal(t, 0, next.Player1BetAmount)
	assert.Equal(t, 0, next.Player2BetAmount)
	assert.Equal(t, 1, next.RequiredBet)
	assert.Equal(t, models.BetNone, next.Player1LastAction)
	assert.Equal(t, models.SideNone, next.RoundWinner)

	// skills survive round boundaries
	assert.Equal(t, []models.SkillType{models.SkillScan}, next.Player1UsedSkills)
}

func TestAdvanceRoundDrawKeepsLife(t *testing.T) {
	e := Default()
	st := revealState()
	c1, c2 := 6, 45 // both value 7
	st.Player1CommittedCard = &c1
	st.Player2CommittedCard = &c2
	st.Player1Hand = []int{6, 5}
	st.Player2Hand = []int{45, 8}

	next, err := e.AdvanceRound(st, "p2")
	require.NoError(t, err)
	assert.Equal(t, 10, next.Player1Life)
	assert.Equal(t, 10, next.Player2Life)
}

func TestAdvanceRoundLoserPaysOwnBet(t *testing.T) {
	e := Default()
	st := revealState()
	c1, c2 := 9, 4 // ten vs five: P1 wins
	st.Player1CommittedCard = &c1
	st.Player2CommittedCard = &c2
	st.Player1Hand = []int{9, 5}
	st.Player2Hand = []int{4, 8}
	st.Player1BetAmount = 1
	st.Player2BetAmount = 3

	next, err := e.AdvanceRound(st, "p1")
	require.NoError(t, err)
	assert.Equal(t, 13, next.Player1Life)
	assert.Equal(t, 7, next.Player2Life)
}

func TestAdvanceRoundHonorsDropWinner(t *testing.T) {
	e := Default()
	st := revealState()
	st.RoundWinner = models.SidePlayer2
	st.Player1BetAmount = 2

	next, err := e.AdvanceRound(st, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, next.Player1Life)
	assert.Equal(t, 12, next.Player2Life)
}

func TestAdvanceRoundRequiresReveal(t *testing.T) {
	e := Default()
	st := bettingState()

	_, err := e.AdvanceRound(st, "p1")
	require.Error(t, err)
}

func TestAdvanceRoundSkillResetOption(t *testing.T) {
	e := New(Options{ResetSkillsEachRound: true})
	st := revealState()

	next, err := e.AdvanceRound(st, "p1")
	require.NoError(t, err)
	assert.Empty(t, next.Player1UsedSkills)
}

func TestDealerForRoundRotatesEveryThreeRounds(t *testing.T) {
	expect := map[int]models.Side{
		1:  models.SidePlayer1,
		2:  models.SidePlayer1,
		3:  models.SidePlayer1,
		4:  models.SidePlayer2,
		5:  models.SidePlayer2,
		6:  models.SidePlayer2,
		7:  models.SidePlayer1,
		10: models.SidePlayer2,
	}
	for round, want := range expect {
		assert.Equal(t, want, DealerForRound(round), "round %d", round)
	}
}

func TestFullRoundScenario(t *testing.T) {
	// StartMatch -> commit ace and two -> call/call -> advance
	e := Default()
	st, err := e.NewMatch("m1", "123456", "p1", "p2")
	require.NoError(t, err)

	st, err = e.CommitCard(st, "p1", 0) // ace
	require.NoError(t, err)
	st, err = e.CommitCard(st, "p2", 1) // two
	require.NoError(t, err)
	require.Equal(t, models.PhaseBetting, st.Phase)
	require.Equal(t, st.Dealer, st.AwaitingPlayer)

	st, err = e.PlaceBet(st, "p1", models.BetCall, 1)
	require.NoError(t, err)
	st, err = e.PlaceBet(st, "p2", models.BetCall, 1)
	require.NoError(t, err)
	require.Equal(t, models.PhaseReveal, st.Phase)

	st, err = e.AdvanceRound(st, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, 9, st.Player1Life, "ace loses to two, P1 pays own bet")
	assert.Equal(t, 11, st.Player2Life)
}
