package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerId string `json:"playerId"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	room, err := h.roomService.Create(r.Context(), req.PlayerId)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "room created",
		Code:    200,
		Data:    map[string]string{"code": room.RoomCode},
	})
}

func (h *Handler) CheckRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	room, err := h.roomService.Check(r.Context(), code)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "room status",
		Code:    200,
		Data:    room,
	})
}

func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req struct {
		PlayerId string `json:"playerId"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	room, err := h.roomService.Join(r.Context(), code, req.PlayerId)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "matched successfully",
		Code:    200,
		Data: map[string]string{
			"player1_id": room.HostPlayerId,
			"player2_id": room.GuestPlayerId,
		},
	})
}

func (h *Handler) CancelRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.roomService.Cancel(r.Context(), code); err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "room canceled",
		Code:    200,
	})
}
