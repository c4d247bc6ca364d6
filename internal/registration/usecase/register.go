package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/idempotency"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
	"github.com/shandysiswandi/userlab/internal/registration/rule"
)

const (
	MsgEmailTaken          = "Cet email est déjà utilisé"
	MsgDuplicateSubmission = "Cette inscription a déjà été enregistrée"
	MsgSubmissionRunning   = "Une inscription identique est en cours de traitement"
)

type (
	RegisterInput struct {
		Firstname      string `validate:"person_name"`
		Lastname       string `validate:"person_name"`
		Email          string `validate:"person_email"`
		Birth          string `validate:"adult"`
		ZipCode        string `validate:"fr_zip_code"`
		City           string `validate:"person_name"`
		IdempotencyKey string `validate:"omitempty,max=128"`
	}

	RegisterOutput struct {
		User entity.User
	}
)

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Email = strings.TrimSpace(in.Email)
	in.Birth = strings.TrimSpace(in.Birth)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.City = strings.TrimSpace(in.City)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	person := &rule.Person{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
		Birth:     in.Birth,
		ZipCode:   in.ZipCode,
		City:      in.City,
	}
	if err := rule.Identity(person); err != nil {
		return nil, invalidRule(err)
	}
	if err := rule.Age(person, now); err != nil {
		return nil, invalidRule(err)
	}

	birth, err := rule.ParseBirth(in.Birth)
	if err != nil {
		return nil, invalidRule(err)
	}

	user := entity.User{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
		City:      in.City,
		ZipCode:   in.ZipCode,
		Birth:     birth,
		CreatedAt: now,
	}

	register := func(ctx context.Context) error {
		user.ID = s.uid.Generate()
		return s.appendUser(ctx, user)
	}

	if in.IdempotencyKey == "" || s.idemp == nil {
		err = register(ctx)
	} else {
		err = s.idemp.Exec(ctx, "registration:"+in.IdempotencyKey, register,
			idempotency.WithStateTTL(s.cfg.GetSecond("registration.idempotency_ttl")))
	}

	switch {
	case err == nil:
	case errors.Is(err, idempotency.ErrCompleted):
		slog.WarnContext(ctx, "registration already completed", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness(MsgDuplicateSubmission, goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrInProgress):
		slog.WarnContext(ctx, "registration in progress", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness(MsgSubmissionRunning, goerror.CodeConflict)
	default:
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, gerr
		}
		slog.ErrorContext(ctx, "failed to track idempotency key", "idempotency_key", in.IdempotencyKey, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishUserRegistered(ctx, user)

	return &RegisterOutput{User: user}, nil
}

func (s *Usecase) appendUser(ctx context.Context, user entity.User) error {
	err := s.repoStore.AppendUser(ctx, user)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "email already registered", "email", user.Email)
		return goerror.NewBusiness(MsgEmailTaken, goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo append user", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) publishUserRegistered(ctx context.Context, user entity.User) {
	ev := UserRegisteredEvent{
		UserID:       user.ID,
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Email:        user.Email,
		City:         user.City,
		ZipCode:      user.ZipCode,
		Birth:        user.Birth,
		RegisteredAt: user.CreatedAt,
	}

	started := s.goroutine.Go(ctx, "registration.publish_user_registered", func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "failed to publish user registered", "user_id", ev.UserID, "error", err)
			return err
		}
		return nil
	})
	if !started {
		slog.WarnContext(ctx, "user registered event dropped", "user_id", ev.UserID)
	}
}

// invalidRule turns a rule error into a field validation error.
func invalidRule(err error) error {
	res := rule.Outcome(err)
	field := res.Err.Field
	if field == "" {
		field = "person"
	}
	return goerror.NewInvalidFields(map[string]string{field: res.Message()})
}
