package api

import (
	"net/http"

	"github.com/avelar/wordflash/internal/logger"
)

type createLearnerRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	learners, err := s.LearnerService.ListLearners(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"learners": learners})
}

func (s *Server) handleGetLearner(w http.ResponseWriter, r *http.Request) {
	id, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.GetLearner(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, learner)
}

func (s *Server) handleCreateLearner(w http.ResponseWriter, r *http.Request) {
	var req createLearnerRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.CreateLearner(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("learner created: id=%d", learner.ID)
	respondJSON(w, http.StatusCreated, learner)
}

func (s *Server) handleDeleteLearner(w http.ResponseWriter, r *http.Request) {
	id, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LearnerService.DeleteLearner(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
