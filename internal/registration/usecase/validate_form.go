package usecase

import (
	"context"

	"github.com/shandysiswandi/userlab/internal/registration/rule"
)

type (
	// ValidateFormInput holds raw form values. A value may be nil, a string,
	// or any other JSON type, which is reported as a bad parameter.
	ValidateFormInput struct {
		Firstname any
		Lastname  any
		Email     any
		Birth     any
		ZipCode   any
		City      any
	}

	ValidateFormOutput struct {
		Errors        map[string]string
		SubmitEnabled bool
	}
)

func (s *Usecase) ValidateForm(ctx context.Context, in ValidateFormInput) (*ValidateFormOutput, error) {
	_, span := s.startSpan(ctx, "ValidateForm")
	defer span.End()

	report := rule.Evaluate(&rule.Person{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
		Birth:     in.Birth,
		ZipCode:   in.ZipCode,
		City:      in.City,
	}, s.clock.Now())

	return &ValidateFormOutput{
		Errors:        report.Messages(),
		SubmitEnabled: report.SubmitEnabled,
	}, nil
}
