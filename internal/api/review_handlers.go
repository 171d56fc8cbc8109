package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/worker"
)

type submitReviewRequest struct {
	Quality     *int    `json:"quality" validate:"required,min=0,max=4"`
	TimeSeconds float64 `json:"time_seconds" validate:"min=0"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.CardFilter{
		LearnerID: learnerID,
		Limit:     queryIntOr(r, "limit", 0),
	}
	if stateStr := r.URL.Query().Get("state"); stateStr != "" {
		state, err := models.ParseCardState(stateStr)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid state filter"))
			return
		}
		filter.States = []models.CardState{state}
	}
	if r.URL.Query().Get("due") == "true" {
		now := time.Now()
		filter.DueBefore = &now
	}

	cards, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	defLimit := s.QueueLimit
	if defLimit <= 0 {
		defLimit = 20
	}
	limit := queryIntOr(r, "limit", defLimit)
	cards, err := s.ReviewService.DueCards(r.Context(), learnerID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cardIDStr := chi.URLParam(r, "cardID")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		log.Warn("invalid card ID: %s", cardIDStr)
		handleError(w, r, errors.NewBadRequestError("invalid card ID"))
		return
	}

	var req submitReviewRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"card_id":      cardID,
		"quality":      *req.Quality,
		"time_seconds": req.TimeSeconds,
	})
	log.Debug("reviewing card")

	card, err := s.ReviewService.ReviewCard(r.Context(), cardID, learnerID, *req.Quality, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Recompute progress off the request path.
	if s.ProgressPool != nil {
		s.ProgressPool.Submit(&worker.ProgressRefreshJob{
			ProgressService: s.ProgressService,
			LearnerID:       learnerID,
		})
	}

	log.Info("card reviewed successfully")
	respondJSON(w, http.StatusOK, card)
}
