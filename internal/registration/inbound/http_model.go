package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	ZipCode   string    `json:"zip_code"`
	Birth     string    `json:"birth"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		City:      u.City,
		ZipCode:   u.ZipCode,
		Birth:     u.Birth.Format(time.DateOnly),
		CreatedAt: u.CreatedAt,
	}
}

type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Birth     string `json:"birth"`
	ZipCode   string `json:"zip_code"`
	City      string `json:"city"`
}

type RegisterResponse struct {
	UserResponse
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

func (RegisterResponse) Message() string {
	return "Inscription réussie"
}

// ValidateFormRequest keeps raw JSON values so type mismatches are reported
// per field instead of failing the whole body.
type ValidateFormRequest struct {
	Firstname any `json:"firstname"`
	Lastname  any `json:"lastname"`
	Email     any `json:"email"`
	Birth     any `json:"birth"`
	ZipCode   any `json:"zip_code"`
	City      any `json:"city"`
}

type ValidateFormResponse struct {
	Errors        map[string]string `json:"errors"`
	SubmitEnabled bool              `json:"submit_enabled"`
}

type ListRecentResponse []UserResponse

func newListRecentResponse(users []entity.User) ListRecentResponse {
	return lo.Map(users, func(u entity.User, _ int) UserResponse {
		return toUserResponse(u)
	})
}

func (l ListRecentResponse) Meta() map[string]any {
	return map[string]any{"count": len(l)}
}

type ExportResponse struct {
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (ExportResponse) Message() string {
	return "Export prêt au téléchargement"
}
