package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

func (h *Handler) StartMatchHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomCode string `json:"roomCode"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.RoomCode == "" {
		h.errorResponse(w, apperr.Validation("missing required parameter: roomCode"))
		return
	}

	st, err := h.matchService.StartMatch(r.Context(), req.RoomCode)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishMatchUpdate(st, "start")

	h.CreateResponse(w, Response{
		Message: "match started",
		Code:    200,
		Data: map[string]interface{}{
			"match_id":     st.MatchId,
			"room_code":    st.RoomCode,
			"player1_id":   st.Player1Id,
			"player2_id":   st.Player2Id,
			"round":        st.Round,
			"dealer":       st.Dealer,
			"phase":        st.Phase,
			"player1_life": st.Player1Life,
			"player2_life": st.Player2Life,
		},
	})
}

func (h *Handler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	matchId := chi.URLParam(r, "id")
	playerId := r.URL.Query().Get("playerId")

	if playerId == "" {
		h.errorResponse(w, apperr.Validation("missing required parameter: playerId"))
		return
	}

	view, err := h.matchService.GetState(r.Context(), matchId, playerId)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "match state",
		Code:    200,
		Data:    view,
	})
}

func (h *Handler) CommitCardHandler(w http.ResponseWriter, r *http.Request) {
	matchId := chi.URLParam(r, "id")

	var req struct {
		PlayerId  string `json:"playerId"`
		CardValue *int   `json:"cardValue"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.PlayerId == "" || req.CardValue == nil {
		h.errorResponse(w, apperr.Validation("missing required parameters: playerId, cardValue"))
		return
	}

	st, err := h.matchService.CommitCard(r.Context(), matchId, req.PlayerId, *req.CardValue)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishMatchUpdate(st, "commit")

	h.CreateResponse(w, Response{
		Message: "card committed",
		Code:    200,
		Data:    st.ViewFor(req.PlayerId),
	})
}

func (h *Handler) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	matchId := chi.URLParam(r, "id")

	var req struct {
		PlayerId   string      `json:"playerId"`
		ActionType string      `json:"actionType"`
		BetValue   interface{} `json:"betValue"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.PlayerId == "" || req.ActionType == "" {
		h.errorResponse(w, apperr.Validation("missing required parameters: playerId, actionType"))
		return
	}

	st, err := h.matchService.PlaceBet(r.Context(), matchId, req.PlayerId,
		models.BetAction(req.ActionType), coerceInt(req.BetValue, 1))
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishMatchUpdate(st, "bet")

	h.CreateResponse(w, Response{
		Message: "bet placed",
		Code:    200,
		Data:    st.ViewFor(req.PlayerId),
	})
}

func (h *Handler) UseSkillHandler(w http.ResponseWriter, r *http.Request) {
	matchId := chi.URLParam(r, "id")

	var req struct {
		PlayerId          string `json:"playerId"`
		SkillType         string `json:"skillType"`
		SelectedCardIndex *int   `json:"selectedCardIndex"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.PlayerId == "" || req.SkillType == "" {
		h.errorResponse(w, apperr.Validation("missing required parameters: playerId, skillType"))
		return
	}

	cardIndex := -1
	if req.SelectedCardIndex != nil {
		cardIndex = *req.SelectedCardIndex
	}

	st, res, err := h.matchService.UseSkill(r.Context(), matchId, req.PlayerId,
		models.SkillType(req.SkillType), cardIndex)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishMatchUpdate(st, "skill")

	h.CreateResponse(w, Response{
		Message: "skill used",
		Code:    200,
		Data:    res,
	})
}

func (h *Handler) AdvanceRoundHandler(w http.ResponseWriter, r *http.Request) {
	matchId := chi.URLParam(r, "id")

	var req struct {
		PlayerId string `json:"playerId"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.PlayerId == "" {
		h.errorResponse(w, apperr.Validation("missing required parameter: playerId"))
		return
	}

	st, err := h.matchService.AdvanceRound(r.Context(), matchId, req.PlayerId)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishMatchUpdate(st, "advance")

	h.CreateResponse(w, Response{
		Message: "round advanced",
		Code:    200,
		Data: map[string]interface{}{
			"round":        st.Round,
			"dealer":       st.Dealer,
			"player1_life": st.Player1Life,
			"player2_life": st.Player2Life,
			"my_view":      st.ViewFor(req.PlayerId),
		},
	})
}

// coerceInt converts the loosely-typed betValue field. Non-numeric input
// falls back to def.
func coerceInt(v interface{}, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	case int:
		return n
	}
	return def
}
