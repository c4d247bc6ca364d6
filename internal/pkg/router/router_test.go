package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	libJWT "github.com/golang-jwt/jwt/v5"
	"github.com/shandysiswandi/userlab/internal/pkg/config"
	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type created struct {
	Name string `json:"name"`
}

func (created) StatusCode() int { return http.StatusCreated }

func (created) Message() string { return "créé" }

type page []string

func (p page) Meta() map[string]any { return map[string]any{"count": len(p)} }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	return NewRouter(Config{Config: cfg, UUID: staticID("generated-cid"), Instrument: instrument.NewNoop()})
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t, "app: {}")

	r.GET("/ok", func(*Request) (any, error) { return map[string]string{"k": "v"}, nil })
	r.POST("/created", func(*Request) (any, error) { return created{Name: "x"}, nil })
	r.GET("/page", func(*Request) (any, error) { return page{"a", "b"}, nil })
	r.GET("/empty", func(*Request) (any, error) { return nil, nil })
	r.POST("/invalid", func(*Request) (any, error) {
		return nil, goerror.NewInvalidFields(map[string]string{"email": "L'email ne peut pas être vide"})
	})
	r.GET("/conflict", func(*Request) (any, error) {
		return nil, goerror.NewBusiness("déjà fait", goerror.CodeConflict)
	})
	r.GET("/plain-error", func(*Request) (any, error) { return nil, errors.New("boom") })
	r.GET("/panic", func(*Request) (any, error) { panic("kaboom") })

	t.Run("default envelope", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "requête traitée avec succès", body["message"])
		assert.Equal(t, map[string]any{"k": "v"}, body["data"])
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("payload shapes status and message", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodPost, "/created", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "créé", body["message"])
		assert.Equal(t, map[string]any{"name": "x"}, body["data"])
	})

	t.Run("payload meta", func(t *testing.T) {
		_, body := serve(r, httptest.NewRequest(http.MethodGet, "/page", nil))
		assert.Equal(t, map[string]any{"count": float64(2)}, body["meta"])
	})

	t.Run("nil payload is no content", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodGet, "/empty", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("validation error lists fields", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodPost, "/invalid", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, goerror.MsgValidation, body["message"])
		assert.Equal(t, map[string]any{"email": "L'email ne peut pas être vide"}, body["error"])
	})

	t.Run("business error keeps its message", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "déjà fait", body["message"])
		assert.NotContains(t, body, "error")
	})

	t.Run("foreign error is hidden", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/plain-error", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, goerror.MsgServer, body["message"])
	})

	t.Run("panic is recovered", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, goerror.MsgServer, body["message"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodDelete, "/ok", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("welcome", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCorrelationID(t *testing.T) {
	r := newTestRouter(t, "app: {}")

	var seen string
	r.GET("/cid", func(req *Request) (any, error) {
		seen = instrument.GetCorrelationID(req.Context())
		return "ok", nil
	})

	t.Run("generated when absent", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodGet, "/cid", nil))
		assert.Equal(t, "generated-cid", rec.Header().Get(HeaderCorrelationID))
		assert.Equal(t, "generated-cid", seen)
	})

	t.Run("propagated from the request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cid", nil)
		req.Header.Set(HeaderCorrelationID, "  abc-123 ")
		rec, _ := serve(r, req)
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderCorrelationID))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("request id is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cid", nil)
		req.Header.Set(HeaderRequestID, "req-9")
		rec, _ := serve(r, req)
		assert.Equal(t, "req-9", rec.Header().Get(HeaderCorrelationID))
	})

	t.Run("oversized id is capped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cid", nil)
		req.Header.Set(HeaderCorrelationID, strings.Repeat("x", 500))
		serve(r, req)
		assert.Len(t, seen, maxCIDLen)
	})
}

func TestMaintenance(t *testing.T) {
	r := newTestRouter(t, `
app:
  maintenance:
    endpoints: ["/api/v1/users/:id"]
`)
	r.GET("/api/v1/users/:id", func(*Request) (any, error) { return "user", nil })
	r.GET("/api/v1/health", func(*Request) (any, error) { return "up", nil })

	rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, MsgMaintenance, body["message"])

	rec, _ = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), nil, mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRequest(t *testing.T) {
	r := newTestRouter(t, "app: {}")

	type payload struct {
		Name string `json:"name"`
	}

	r.POST("/items/:id", func(req *Request) (any, error) {
		var p payload
		if err := req.DecodeBody(&p); err != nil {
			return nil, err
		}
		size, err := req.GetQueryInt("size")
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"id":     req.GetParam("id"),
			"name":   p.Name,
			"size":   size,
			"header": req.GetHeader("X-Test"),
		}, nil
	})

	t.Run("reads params query header and body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/items/7?size=3", strings.NewReader(`{"name":"Noël"}`))
		req.Header.Set("X-Test", " value ")
		rec, body := serve(r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"id": "7", "name": "Noël", "size": float64(3), "header": "value"}, body["data"])
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodPost, "/items/7", strings.NewReader(`{"name":"a","admin":true}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodPost, "/items/7", strings.NewReader(`{"name":`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non numeric query is rejected", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodPost, "/items/7?size=abc", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type stubVerifier map[string]string

func (s stubVerifier) Generate(subject string) (string, error) { return "token-" + subject, nil }

func (s stubVerifier) Verify(token string) (jwt.Claims, error) {
	sub, ok := s[token]
	if !ok {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{RegisteredClaims: libJWT.RegisteredClaims{Subject: sub}}, nil
}

func TestAuthenticated(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	r := NewRouter(Config{Config: cfg, UUID: staticID("cid"), JWT: stubVerifier{"good": "alice"}})
	r.POST("/guarded", func(req *Request) (any, error) {
		return map[string]string{"sub": jwt.GetAuth(req.Context()).Subject}, nil
	}, r.Authenticated())
	r.POST("/open", func(*Request) (any, error) { return map[string]string{}, nil })

	t.Run("missing header", func(t *testing.T) {
		rec, body := serve(r, httptest.NewRequest(http.MethodPost, "/guarded", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgAuthRequired, body["message"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.Header.Set("Authorization", "Basic good")
		rec, _ := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec, body := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgInvalidToken, body["message"])
	})

	t.Run("valid token reaches the handler with claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.Header.Set("Authorization", "bearer good")
		rec, body := serve(r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"sub": "alice"}, body["data"])
	})

	t.Run("unguarded endpoint stays open", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodPost, "/open", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no verifier rejects every token", func(t *testing.T) {
		bare := NewRouter(Config{Config: cfg, UUID: staticID("cid")})
		bare.POST("/guarded", func(*Request) (any, error) { return map[string]string{}, nil }, bare.Authenticated())

		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec, _ := serve(bare, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
