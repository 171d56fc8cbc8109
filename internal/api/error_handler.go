package api

import (
	stderrors "errors"
	"net/http"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/review"
	"github.com/avelar/wordflash/internal/srs"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr := toAppError(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	respondJSON(w, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// toAppError maps domain errors onto the API error taxonomy.
func toAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stderrors.Is(err, srs.ErrQualityOutOfRange):
		return errors.NewValidationError("quality", err.Error())
	case stderrors.Is(err, srs.ErrCorruptCard):
		return errors.NewValidationError("card", err.Error())
	case stderrors.Is(err, review.ErrNoCards),
		stderrors.Is(err, review.ErrAlreadyStarted),
		stderrors.Is(err, review.ErrNotStarted),
		stderrors.Is(err, review.ErrCompleted),
		stderrors.Is(err, review.ErrAnswerNotRevealed):
		return errors.NewStateError(err)
	default:
		return errors.NewInternalError(err)
	}
}
