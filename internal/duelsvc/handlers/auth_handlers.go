package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	log.Infof("user %s registered", user.UserId)

	h.CreateResponse(w, Response{
		Message: "user registered",
		Code:    200,
		Data:    map[string]string{"user_id": user.UserId},
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	token, err := h.issueToken(user.UserId)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "login ok",
		Code:    200,
		Data: map[string]string{
			"user_id": user.UserId,
			"token":   token,
		},
	})
}
