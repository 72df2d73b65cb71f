package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/rooms", h.CreateRoomHandler)
			r.Get("/rooms/{code}", h.CheckRoomHandler)
			r.Post("/rooms/{code}/join", h.JoinRoomHandler)
			r.Delete("/rooms/{code}", h.CancelRoomHandler)

			r.Post("/matches", h.StartMatchHandler)
			r.Get("/matches/{id}", h.GetStateHandler)
			r.Post("/matches/{id}/commit", h.CommitCardHandler)
			r.Post("/matches/{id}/bet", h.PlaceBetHandler)
			r.Post("/matches/{id}/skill", h.UseSkillHandler)
			r.Post("/matches/{id}/advance", h.AdvanceRoundHandler)
		})
	})
}
