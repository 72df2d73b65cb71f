package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/broker"
	"github.com/hakarigames/duel-services/internal/duelsvc/service"
)

type Handler struct {
	tokenAuth    *jwtauth.JWTAuth
	matchService *service.MatchService
	roomService  *service.RoomService
	userService  *service.UserService
	broker       *broker.Broker
}

func NewHandler(matchService *service.MatchService, roomService *service.RoomService,
	userService *service.UserService, b *broker.Broker) *Handler {
	return &Handler{
		matchService: matchService,
		roomService:  roomService,
		userService:  userService,
		broker:       b,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// errorResponse translates the error taxonomy to a status code. Internal
// failures are logged in full and answered with a generic message.
func (h *Handler) errorResponse(w http.ResponseWriter, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		log.Errorf("internal error: %v", err)
	}
	h.CreateResponse(w, Response{
		Code:  apperr.HTTPStatus(err),
		Error: apperr.PublicMessage(err),
	})
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.errorResponse(w, apperr.Validation("malformed request body"))
		return false
	}
	return true
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "duel service is running at port " + os.Getenv("DUEL_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// issueToken creates the session JWT returned by login.
func (h *Handler) issueToken(userId string) (string, error) {
	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userId,
		"exp":     expirationTime,
	})
	return tokenString, err
}
