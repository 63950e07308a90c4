package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

func newSessionFixture() (*SessionService, *stubSessionRepo, *fakeBackend, *recordingMetrics) {
	repo := newStubSessionRepo()
	backend := newFakeBackend()
	metrics := &recordingMetrics{}
	svc := NewSessionService(repo, backend, nil, zap.NewNop(), metrics, SessionConfig{Secret: "secret", TTL: time.Hour, Issuer: "test"})
	return svc, repo, backend, metrics
}

func TestSessionServiceIssueAndParse(t *testing.T) {
	svc, _, _, _ := newSessionFixture()
	token, expiresAt, err := svc.Issue("sid-1")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	sid, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)

	other := NewSessionService(newStubSessionRepo(), newFakeBackend(), nil, nil, nil, SessionConfig{Secret: "other"})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestSessionServiceLoginSuccess(t *testing.T) {
	svc, repo, backend, metrics := newSessionFixture()
	backend.responses["POST /auth/login"] = `{"data":{"token":"backend-token","user":{"id":7,"name":"Sari","email":"sari@example.id","role":"koordinator"}}}`

	session, err := svc.Login(context.Background(), "sid", forms.LoginForm{Email: "sari@example.id", Password: "rahasia123"})
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.Equal(t, "7", session.User.ID.String())
	assert.Equal(t, "backend-token", session.Token)
	assert.False(t, session.Loading)
	assert.True(t, session.Authenticated())

	stored, err := repo.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, "koordinator", stored.Role())
	assert.Contains(t, metrics.ops, "login")
}

func TestSessionServiceLoginFailureThenSuccess(t *testing.T) {
	svc, repo, backend, _ := newSessionFixture()
	backend.errs["POST /auth/login"] = appErrors.New(appErrors.CodeUpstream, http.StatusUnauthorized, "Email atau password salah")

	session, err := svc.Login(context.Background(), "sid", forms.LoginForm{Email: "a@b.id", Password: "x"})
	require.Error(t, err)
	assert.Nil(t, session.User)
	assert.Equal(t, "Email atau password salah", session.Error)
	stored, _ := repo.Get(context.Background(), "sid")
	assert.False(t, stored.Authenticated())

	delete(backend.errs, "POST /auth/login")
	backend.responses["POST /auth/login"] = `{"token":"t","user":{"id":"1","role":"admin_pusat"}}`
	session, err = svc.Login(context.Background(), "sid", forms.LoginForm{Email: "a@b.id", Password: "x"})
	require.NoError(t, err)
	assert.Empty(t, session.Error)
	assert.Equal(t, "admin_pusat", session.Role())
}

func TestSessionServiceLoginValidationSkipsBackend(t *testing.T) {
	svc, _, backend, _ := newSessionFixture()
	_, err := svc.Login(context.Background(), "sid", forms.LoginForm{Email: "bukan-email"})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeValidation))
	assert.Equal(t, 0, backend.callCount())
}

func TestSessionServiceGetCurrentUser(t *testing.T) {
	svc, repo, backend, _ := newSessionFixture()
	ctx := context.Background()

	_, err := svc.GetCurrentUser(ctx, "sid")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Equal(t, 0, backend.callCount())

	backend.responses["POST /auth/login"] = `{"token":"t","user":{"id":"1","name":"Lama","role":"fasilitator"}}`
	_, err = svc.Login(ctx, "sid", forms.LoginForm{Email: "a@b.id", Password: "x"})
	require.NoError(t, err)

	backend.responses["GET /auth/me"] = `{"data":{"id":"1","name":"Baru","role":"fasilitator"}}`
	session, err := svc.GetCurrentUser(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "Baru", session.User.Name)
	assert.Equal(t, "t", backend.lastCall().Token)

	backend.errs["GET /auth/me"] = appErrors.Clone(appErrors.ErrUnauthorized, "token kedaluwarsa")
	session, err = svc.GetCurrentUser(ctx, "sid")
	require.Error(t, err)
	assert.Equal(t, "token kedaluwarsa", session.Error)
	stored, _ := repo.Get(ctx, "sid")
	assert.Nil(t, stored.User)
}

func TestSessionServiceUpdateProfileMergesFields(t *testing.T) {
	svc, repo, backend, _ := newSessionFixture()
	ctx := context.Background()
	backend.responses["POST /auth/login"] = `{"token":"t","user":{"id":"1","name":"Sari","email":"sari@example.id","phone":"0811111111","role":"admin_sekolah"}}`
	_, err := svc.Login(ctx, "sid", forms.LoginForm{Email: "sari@example.id", Password: "x"})
	require.NoError(t, err)

	backend.responses["PUT /auth/profile"] = `{"data":{"nama":"Sari Dewi","telepon":"081234567890"}}`
	user, err := svc.UpdateProfile(ctx, "sid", forms.ProfileForm{Name: "Sari Dewi", Email: "sari@example.id", Phone: "081234567890"})
	require.NoError(t, err)
	assert.Equal(t, "Sari Dewi", user.Name)
	assert.Equal(t, "081234567890", user.Phone)
	assert.Equal(t, "sari@example.id", user.Email)

	stored, _ := repo.Get(ctx, "sid")
	assert.Equal(t, "Sari Dewi", stored.User.Name)
}

func TestSessionServiceLogOutResetsEvenWhenBackendFails(t *testing.T) {
	svc, repo, backend, _ := newSessionFixture()
	ctx := context.Background()
	backend.responses["POST /auth/login"] = `{"token":"t","user":{"id":"1","role":"koordinator"}}`
	_, err := svc.Login(ctx, "sid", forms.LoginForm{Email: "a@b.id", Password: "x"})
	require.NoError(t, err)

	backend.errs["POST /auth/logout"] = appErrors.ErrNetwork
	require.NoError(t, svc.LogOut(ctx, "sid"))
	assert.Equal(t, []string{"sid"}, repo.deleted)

	session, err := svc.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestSessionServiceFlash(t *testing.T) {
	svc, _, _, _ := newSessionFixture()
	ctx := context.Background()
	require.NoError(t, svc.SetFlash(ctx, "sid", "Data berhasil disimpan"))
	assert.Equal(t, "Data berhasil disimpan", svc.PopFlash(ctx, "sid"))
	assert.Empty(t, svc.PopFlash(ctx, "sid"))
}

func TestSessionServiceStart(t *testing.T) {
	svc, repo, _, _ := newSessionFixture()
	session, token, err := svc.Start(context.Background())
	require.NoError(t, err)
	sid, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, sid)
	_, err = repo.Get(context.Background(), sid)
	assert.NoError(t, err)
}

func TestSessionServiceRejectsUnknownRole(t *testing.T) {
	svc, repo, backend, _ := newSessionFixture()
	ctx := context.Background()
	backend.responses["POST /auth/login"] = `{"token":"t","user":{"id":"1","name":"Budi","role":"guru"}}`

	session, err := svc.Login(ctx, "sid", forms.LoginForm{Email: "budi@example.id", Password: "rahasia123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnknownRole)
	assert.Nil(t, session.User)
	assert.Empty(t, session.Token)
	assert.Equal(t, appErrors.ErrUnknownRole.Message, session.Error)
	stored, _ := repo.Get(ctx, "sid")
	assert.False(t, stored.Authenticated())

	backend.responses["POST /auth/login"] = `{"token":"t","user":{"id":"1","role":"fasilitator"}}`
	_, err = svc.Login(ctx, "sid", forms.LoginForm{Email: "budi@example.id", Password: "rahasia123"})
	require.NoError(t, err)

	backend.responses["GET /auth/me"] = `{"data":{"id":"1","role":"guru"}}`
	session, err = svc.GetCurrentUser(ctx, "sid")
	assert.ErrorIs(t, err, appErrors.ErrUnknownRole)
	assert.Nil(t, session.User)
	assert.False(t, session.Authenticated())
}
