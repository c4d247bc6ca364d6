package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
)

const (
	defaultRecentSize = 5
	defaultMaxRecent  = 100
)

type (
	ListRecentInput struct {
		Size int `validate:"gte=0"`
	}

	ListRecentOutput struct {
		Users []entity.User
	}
)

// ListRecent returns the last registered users, oldest first. A zero size
// means registration.recent_size; sizes above registration.max_recent_size
// are capped.
func (s *Usecase) ListRecent(ctx context.Context, in ListRecentInput) (*ListRecentOutput, error) {
	ctx, span := s.startSpan(ctx, "ListRecent")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	size := in.Size
	if size == 0 {
		size = s.cfg.GetInt("registration.recent_size")
	}
	if size <= 0 {
		size = defaultRecentSize
	}

	maxSize := s.cfg.GetInt("registration.max_recent_size")
	if maxSize <= 0 {
		maxSize = defaultMaxRecent
	}
	size = min(size, maxSize)

	users, err := s.repoStore.ListUsers(ctx, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "size", size, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListRecentOutput{Users: users}, nil
}
