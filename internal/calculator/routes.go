package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", h.Evaluate)
		r.Get("/words", h.Words)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/digit", h.Digit)
				r.Post("/bracket", h.Bracket)
				r.Post("/operator", h.Operator)
				r.Post("/backspace", h.Backspace)
				r.Post("/equals", h.Equals)
				r.Post("/clear", h.Clear)
				r.Post("/keys", h.Keys)
			})
		})
	})
}
