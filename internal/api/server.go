package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/avelar/wordflash/internal/services"
	"github.com/avelar/wordflash/internal/worker"
)

// Server bundles the services the handlers depend on.
type Server struct {
	LearnerService  services.LearnerService
	CardService     services.CardService
	ReviewService   services.ReviewService
	ProgressService services.ProgressService
	ProgressPool    *worker.Pool

	// QueueLimit is the default review queue size when the request does
	// not specify one.
	QueueLimit int

	validate *validator.Validate
}

// NewServer creates a Server with request validation wired up.
func NewServer() *Server {
	return &Server{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
