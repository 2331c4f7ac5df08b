package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftlink/backend/internal/domain"
	"github.com/liftlink/backend/internal/repository"
	"github.com/liftlink/backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByVerificationCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.users {
		if u.VerificationCode != nil && *u.VerificationCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Verified = true
		u.VerificationCode = nil
	}
	return nil
}

func (r *memUserRepo) SetVerificationCode(_ context.Context, id uuid.UUID, code string) error {
	if u, ok := r.users[id]; ok {
		c := code
		u.VerificationCode = &c
	}
	return nil
}

func (r *memUserRepo) ListProfiles(_ context.Context, _ repository.ProfileFilter) ([]domain.Profile, error) {
	return nil, nil
}

func newAuthTestServer(t *testing.T) (*http.ServeMux, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	svc := service.NewAuthService(users, nil, "test-secret", time.Hour, true, zerolog.Nop())
	h := NewAuthHandler(svc, zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	return mux, users
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSignupEndpoint(t *testing.T) {
	mux, users := newAuthTestServer(t)

	rec := postJSON(t, mux, "/api/v1/auth/signup", map[string]any{
		"email":    "hokie@vt.edu",
		"password": "Str0ngpass",
		"gender":   "female",
		"age":      21,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, users.users, 1)
}

func TestSignupEndpointValidation(t *testing.T) {
	mux, _ := newAuthTestServer(t)

	rec := postJSON(t, mux, "/api/v1/auth/signup", map[string]any{
		"email":    "not-an-email",
		"password": "short",
		"gender":   "",
		"age":      12,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "email")
	assert.Contains(t, resp.Error.Fields, "password")
	assert.Contains(t, resp.Error.Fields, "gender")
	assert.Contains(t, resp.Error.Fields, "age")
}

func TestSignupEndpointRejectsNonUniversityEmail(t *testing.T) {
	mux, _ := newAuthTestServer(t)

	rec := postJSON(t, mux, "/api/v1/auth/signup", map[string]any{
		"email":    "someone@gmail.com",
		"password": "Str0ngpass",
		"gender":   "male",
		"age":      20,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_DOMAIN")
}

func TestLoginEndpoint(t *testing.T) {
	mux, _ := newAuthTestServer(t)

	rec := postJSON(t, mux, "/api/v1/auth/signup", map[string]any{
		"email":    "hokie@vt.edu",
		"password": "Str0ngpass",
		"gender":   "female",
		"age":      21,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, mux, "/api/v1/auth/login", map[string]any{
		"email":    "hokie@vt.edu",
		"password": "Str0ngpass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)

	rec = postJSON(t, mux, "/api/v1/auth/login", map[string]any{
		"email":    "hokie@vt.edu",
		"password": "WrongPass1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}
