package models

// Side identifies one seat of a match.
type Side string

const (
	SidePlayer1 Side = "P1"
	SidePlayer2 Side = "P2"
	SideNone    Side = ""
)

// Phase is the per-round state of a match. Card commitment covers what older
// revisions split into a set phase and a card placement phase; the timed
// transition between those two was a client polling concern, not state.
type Phase string

const (
	PhaseCommitment Phase = "commitment"
	PhaseBetting    Phase = "betting"
	PhaseReveal     Phase = "reveal"
)

// BetAction is a player's move during the betting phase.
type BetAction string

const (
	BetCall  BetAction = "call"
	BetRaise BetAction = "raise"
	BetDrop  BetAction = "drop"
	BetNone  BetAction = ""
)

// SkillType is one of the five one-time-per-match special actions.
type SkillType string

const (
	SkillScan     SkillType = "Scan"
	SkillChange   SkillType = "Change"
	SkillObstruct SkillType = "Obstruct"
	SkillFakeOut  SkillType = "FakeOut"
	SkillCopy     SkillType = "Copy"
)

// SkillCatalog lists every skill a player may use once per match.
var SkillCatalog = []SkillType{SkillScan, SkillChange, SkillObstruct, SkillFakeOut, SkillCopy}

func ValidSkill(s SkillType) bool {
	for _, v := range SkillCatalog {
		if v == s {
			return true
		}
	}
	return false
}

// MatchState is the authoritative record of one match. Version counts writes
// and backs the conditional updates in the store; every mutation loads a
// state, computes the full successor and writes it back only if Version is
// unchanged since the read.
type MatchState struct {
	MatchId   string `bson:"match_id" json:"match_id"`
	RoomCode  string `bson:"room_code" json:"room_code"`
	Player1Id string `bson:"player1_id" json:"player1_id"`
	Player2Id string `bson:"player2_id" json:"player2_id"`

	Deck        []int `bson:"deck" json:"deck"`
	Player1Hand []int `bson:"player1_hand" json:"player1_hand"`
	Player2Hand []int `bson:"player2_hand" json:"player2_hand"`

	Player1Life int `bson:"player1_life" json:"player1_life"`
	Player2Life int `bson:"player2_life" json:"player2_life"`

	Round  int   `bson:"round" json:"round"`
	Dealer Side  `bson:"dealer" json:"dealer"`
	Phase  Phase `bson:"phase" json:"phase"`

	Player1Committed     bool `bson:"player1_committed" json:"player1_committed"`
	Player2Committed     bool `bson:"player2_committed" json:"player2_committed"`
	Player1CommittedCard *int `bson:"player1_committed_card" json:"player1_committed_card"`
	Player2CommittedCard *int `bson:"player2_committed_card" json:"player2_committed_card"`

	Player1BetAmount  int       `bson:"player1_bet_amount" json:"player1_bet_amount"`
	Player2BetAmount  int       `bson:"player2_bet_amount" json:"player2_bet_amount"`
	RequiredBet       int       `bson:"required_bet" json:"required_bet"`
	Player1LastAction BetAction `bson:"player1_last_action" json:"player1_last_action"`
	Player2LastAction BetAction `bson:"player2_last_action" json:"player2_last_action"`

	Player1UsedSkills []SkillType `bson:"player1_used_skills" json:"player1_used_skills"`
	Player2UsedSkills []SkillType `bson:"player2_used_skills" json:"player2_used_skills"`

	// RoundWinner is set when a drop decides the round before reveal.
	RoundWinner    Side `bson:"round_winner" json:"round_winner"`
	AwaitingPlayer Side `bson:"awaiting_player" json:"awaiting_player"`

	Version   int64 `bson:"version" json:"version"`
	CreatedAt int64 `bson:"created_at" json:"created_at"`
	UpdatedAt int64 `bson:"updated_at" json:"updated_at"`
}

// SideOf returns which seat playerId occupies, or SideNone.
func (m *MatchState) SideOf(playerId string) Side {
	switch playerId {
	case m.Player1Id:
		return SidePlayer1
	case m.Player2Id:
		return SidePlayer2
	default:
		return SideNone
	}
}

func (s Side) Other() Side {
	switch s {
	case SidePlayer1:
		return SidePlayer2
	case SidePlayer2:
		return SidePlayer1
	default:
		return SideNone
	}
}

// PlayerId resolves a side back to the player identifier.
func (m *MatchState) PlayerId(s Side) string {
	switch s {
	case SidePlayer1:
		return m.Player1Id
	case SidePlayer2:
		return m.Player2Id
	default:
		return ""
	}
}

// PlayerView is the state as one participant is allowed to see it: the own
// hand is visible, the opponent's hand is not, only the opponent's placed
// card id and last action leak through.
type PlayerView struct {
	MatchId   string `json:"match_id"`
	RoomCode  string `json:"room_code"`
	Player1Id string `json:"player1_id"`
	Player2Id string `json:"player2_id"`

	Round          int   `json:"round"`
	Dealer         Side  `json:"dealer"`
	Phase          Phase `json:"phase"`
	AwaitingPlayer Side  `json:"awaiting_player"`

	Player1Life int `json:"player1_life"`
	Player2Life int `json:"player2_life"`
	RequiredBet int `json:"required_bet"`

	MyCards     []int       `json:"my_cards"`
	MyLife      int         `json:"my_life"`
	MyBetAmount int         `json:"my_bet_amount"`
	MyCommitted bool        `json:"my_committed"`
	MySkills    []SkillType `json:"my_used_skills"`

	OpponentCommitted  bool      `json:"opponent_committed"`
	OpponentPlacedCard *int      `json:"opponent_placed_card,omitempty"`
	OpponentLastAction BetAction `json:"opponent_last_action"`
	OpponentBetAmount  int       `json:"opponent_bet_amount"`

	UpdatedAt int64 `json:"updated_at"`
}

// ViewFor projects the match state onto what playerId may see. The caller
// must have verified participation already.
func (m *MatchState) ViewFor(playerId string) PlayerView {
	v := PlayerView{
		MatchId:        m.MatchId,
		RoomCode:       m.RoomCode,
		Player1Id:      m.Player1Id,
		Player2Id:      m.Player2Id,
		Round:          m.Round,
		Dealer:         m.Dealer,
		Phase:          m.Phase,
		AwaitingPlayer: m.AwaitingPlayer,
		Player1Life:    m.Player1Life,
		Player2Life:    m.Player2Life,
		RequiredBet:    m.RequiredBet,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.SideOf(playerId) == SidePlayer1 {
		v.MyCards = append([]int(nil), m.Player1Hand...)
		v.MyLife = m.Player1Life
		v.MyBetAmount = m.Player1BetAmount
		v.MyCommitted = m.Player1Committed
		v.MySkills = append([]SkillType(nil), m.Player1UsedSkills...)
		v.OpponentCommitted = m.Player2Committed
		v.OpponentLastAction = m.Player2LastAction
		v.OpponentBetAmount = m.Player2BetAmount
		// the opponent's committed card id is public once placed
		v.OpponentPlacedCard = m.Player2CommittedCard
	} else {
		v.MyCards = append([]int(nil), m.Player2Hand...)
		v.MyLife = m.Player2Life
		v.MyBetAmount = m.Player2BetAmount
		v.MyCommitted = m.Player2Committed
		v.MySkills = append([]SkillType(nil), m.Player2UsedSkills...)
		v.OpponentCommitted = m.Player1Committed
		v.OpponentLastAction = m.Player1LastAction
		v.OpponentBetAmount = m.Player1BetAmount
		v.OpponentPlacedCard = m.Player1CommittedCard
	}

	return v
}
