package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// decodeBody parses a JSON request body into dst and runs struct
// validation on it.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Field(), "failed "+fe.Tag()+" validation")
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}

func learnerIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "learnerID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.FromContext(r.Context()).Warn("invalid learner ID: %s", idStr)
		return 0, errors.NewBadRequestError("invalid learner ID")
	}
	return id, nil
}

func queryIntOr(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
