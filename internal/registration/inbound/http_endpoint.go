package inbound

import (
	"github.com/shandysiswandi/userlab/internal/pkg/router"
	"github.com/shandysiswandi/userlab/internal/registration/usecase"
)

// HTTPEndpoint exposes the registration form over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a user from a submitted form.
// A repeated Idempotency-Key header is answered with 409.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Email:          req.Email,
		Birth:          req.Birth,
		ZipCode:        req.ZipCode,
		City:           req.City,
		IdempotencyKey: r.GetHeader(HeaderIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{UserResponse: toUserResponse(resp.User)}, nil
}

// ValidateForm reports the per-field messages of a partially filled form.
func (h *HTTPEndpoint) ValidateForm(r *router.Request) (any, error) {
	var req ValidateFormRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ValidateForm(r.Context(), usecase.ValidateFormInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Birth:     req.Birth,
		ZipCode:   req.ZipCode,
		City:      req.City,
	})
	if err != nil {
		return nil, err
	}

	return ValidateFormResponse{Errors: resp.Errors, SubmitEnabled: resp.SubmitEnabled}, nil
}

// ListRecent returns the last registered users, oldest first.
func (h *HTTPEndpoint) ListRecent(r *router.Request) (any, error) {
	size, err := r.GetQueryInt("size")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListRecent(r.Context(), usecase.ListRecentInput{Size: size})
	if err != nil {
		return nil, err
	}

	return newListRecentResponse(resp.Users), nil
}

// Export uploads every user as CSV and returns a temporary download link.
func (h *HTTPEndpoint) Export(r *router.Request) (any, error) {
	resp, err := h.uc.Export(r.Context())
	if err != nil {
		return nil, err
	}

	return ExportResponse{URL: resp.URL, Count: resp.Count, ExpiresAt: resp.ExpiresAt}, nil
}
