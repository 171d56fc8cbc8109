package api

import (
	"net/http"

	"github.com/avelar/wordflash/internal/logger"
)

type addWordRequest struct {
	Term        string `json:"term" validate:"required,min=1,max=256"`
	Translation string `json:"translation" validate:"max=1024"`
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	words, err := s.CardService.ListWords(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"words": words})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req addWordRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	word, card, err := s.CardService.AddWord(r.Context(), learnerID, req.Term, req.Translation)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("word added: word_id=%d, card_id=%s", word.ID, card.ID)
	respondJSON(w, http.StatusCreated, map[string]any{
		"word": word,
		"card": card,
	})
}
