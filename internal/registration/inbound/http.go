package inbound

import (
	"context"

	"github.com/shandysiswandi/userlab/internal/pkg/router"
	"github.com/shandysiswandi/userlab/internal/registration/usecase"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	ValidateForm(ctx context.Context, in usecase.ValidateFormInput) (*usecase.ValidateFormOutput, error)
	ListRecent(ctx context.Context, in usecase.ListRecentInput) (*usecase.ListRecentOutput, error)
	Export(ctx context.Context) (*usecase.ExportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/users", end.ListRecent)
	r.POST("/api/v1/users", end.Register)
	r.POST("/api/v1/users/validate", end.ValidateForm)
	r.POST("/api/v1/users/export", end.Export, r.Authenticated())
}
