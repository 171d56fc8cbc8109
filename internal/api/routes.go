package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/learners", func(r chi.Router) {
		r.Get("/", s.handleListLearners)
		r.Post("/", s.handleCreateLearner)

		r.Route("/{learnerID}", func(r chi.Router) {
			r.Get("/", s.handleGetLearner)
			r.Delete("/", s.handleDeleteLearner)

			r.Get("/words", s.handleListWords)
			r.Post("/words", s.handleAddWord)

			r.Get("/cards", s.handleListCards)
			r.Get("/review/queue", s.handleReviewQueue)
			r.Post("/cards/{cardID}/review", s.handleSubmitReview)

			r.Get("/progress", s.handleGetProgress)
			r.Post("/progress/refresh", s.handleRefreshProgress)
		})
	})

	return r
}
