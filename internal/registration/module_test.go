package registration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/userlab/internal/pkg/authz"
	"github.com/shandysiswandi/userlab/internal/pkg/clock"
	"github.com/shandysiswandi/userlab/internal/pkg/config"
	"github.com/shandysiswandi/userlab/internal/pkg/goroutine"
	"github.com/shandysiswandi/userlab/internal/pkg/idempotency"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/jwt"
	"github.com/shandysiswandi/userlab/internal/pkg/messaging"
	"github.com/shandysiswandi/userlab/internal/pkg/router"
	"github.com/shandysiswandi/userlab/internal/pkg/uid"
	"github.com/shandysiswandi/userlab/internal/pkg/validator"
	"github.com/shandysiswandi/userlab/internal/registration/outbound/store"
	"github.com/shandysiswandi/userlab/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	handler   http.Handler
	tokens    *jwt.Symmetric
	publisher *messaging.Memory
	goroutine *goroutine.Manager
}

func newEnv(t *testing.T, yaml string) (*env, Dependency) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	snow, err := uid.NewSnowflake(1)
	require.NoError(t, err)

	clk := clock.Fixed(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC))
	ins := instrument.NewNoop()
	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		Issuer: "userlab",
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	enf, err := authz.New([]string{"admin, users, export"}, []string{"alice, admin"})
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: ins, JWT: tokens})

	e := &env{handler: r, tokens: tokens, publisher: messaging.NewMemory(), goroutine: goroutine.NewManager(4)}
	return e, Dependency{
		Ctx:         context.Background(),
		Goroutine:   e.goroutine,
		Router:      r,
		Idempotency: idempotency.NewMemory(clk.Now),
		Enforcer:    enf,
		Messaging:   e.publisher,
		Config:      cfg,
		Instrument:  ins,
		UID:         snow,
		Clock:       clk,
		Validator:   v,
	}
}

func (e *env) do(t *testing.T, method, target, body string) (int, map[string]any) {
	t.Helper()
	return e.doAs(t, "", method, target, body)
}

func (e *env) doAs(t *testing.T, operator, method, target, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if operator != "" {
		token, err := e.tokens.Generate(operator)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestNew(t *testing.T) {
	t.Run("registers and lists users", func(t *testing.T) {
		e, dep := newEnv(t, "store:\n  driver: memory\n")
		require.NoError(t, New(dep))

		code, body := e.do(t, http.MethodPost, "/api/v1/users",
			`{"firstname":"Noël","lastname":"Côté","email":"noel.cote@example.fr","birth":"1990-05-12","zip_code":"35200","city":"Rennes"}`)
		require.Equal(t, http.StatusCreated, code, body)

		code, body = e.do(t, http.MethodPost, "/api/v1/users",
			`{"firstname":"Rob3rt","lastname":"Dupont","email":"rob@example.fr","birth":"2011-01-01","zip_code":"75000","city":"Paris"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, map[string]any{
			"firstname": "Les chiffres sont interdits",
			"birth":     "Vous devez être majeur pour vous inscrire",
			"zip_code":  "Le code postal n'est pas valide",
		}, body["error"])

		code, body = e.do(t, http.MethodGet, "/api/v1/users", "")
		require.Equal(t, http.StatusOK, code)
		data, ok := body["data"].([]any)
		require.True(t, ok)
		require.Len(t, data, 1)
		assert.Equal(t, "noel.cote@example.fr", data[0].(map[string]any)["email"])

		require.NoError(t, e.goroutine.Wait())
		sent := e.publisher.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, event.UserRegisteredDestination, sent[0].Destination)
	})

	t.Run("validates a form", func(t *testing.T) {
		e, dep := newEnv(t, "app: {}")
		require.NoError(t, New(dep))

		code, body := e.do(t, http.MethodPost, "/api/v1/users/validate", `{"email":"user@"}`)
		require.Equal(t, http.StatusOK, code)
		data := body["data"].(map[string]any)
		assert.Equal(t, false, data["submit_enabled"])
		assert.Equal(t, "Le format de l'email est invalide", data["errors"].(map[string]any)["email"])
	})

	t.Run("export is unavailable without storage", func(t *testing.T) {
		e, dep := newEnv(t, "app: {}")
		require.NoError(t, New(dep))

		code, _ := e.doAs(t, "alice", http.MethodPost, "/api/v1/users/export", "")
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})

	t.Run("export requires an authorized operator", func(t *testing.T) {
		e, dep := newEnv(t, "app: {}")
		require.NoError(t, New(dep))

		code, _ := e.do(t, http.MethodPost, "/api/v1/users/export", "")
		assert.Equal(t, http.StatusUnauthorized, code)

		code, body := e.doAs(t, "mallory", http.MethodPost, "/api/v1/users/export", "")
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "Accès refusé", body["message"])
	})

	t.Run("missing dependency", func(t *testing.T) {
		_, dep := newEnv(t, "app: {}")
		dep.Messaging = nil
		assert.Error(t, New(dep))

		_, dep = newEnv(t, "app: {}")
		dep.Enforcer = nil
		assert.Error(t, New(dep))
	})

	t.Run("store driver needs its connection", func(t *testing.T) {
		_, dep := newEnv(t, "store:\n  driver: postgres\n")
		assert.ErrorIs(t, New(dep), store.ErrMissingConn)
	})
}
