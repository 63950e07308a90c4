package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// SessionRepository persists sessions with a time to live.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionMetrics interface {
	RecordSessionOperation(operation string, err error)
}

// SessionConfig controls the session cookie and its lifetime.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// SessionClaims is the payload of the session cookie. It carries only the session id.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type loginPayload struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// SessionService is the single session store of the dashboard. Pages read the current user
// only through it.
type SessionService struct {
	repo      SessionRepository
	backend   backendClient
	validator *validator.Validate
	logger    *zap.Logger
	metrics   sessionMetrics
	config    SessionConfig
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo SessionRepository, backend backendClient, validate *validator.Validate, logger *zap.Logger, metrics sessionMetrics, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = forms.NewValidator()
	}
	if config.TTL <= 0 {
		config.TTL = 12 * time.Hour
	}
	return &SessionService{
		repo:      repo,
		backend:   backend,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       time.Now,
	}
}

// Start creates an empty session and returns it with its signed cookie value.
func (s *SessionService) Start(ctx context.Context) (*models.Session, string, error) {
	session := &models.Session{ID: uuid.NewString()}
	if err := s.save(ctx, "start", session); err != nil {
		return nil, "", err
	}
	token, _, err := s.Issue(session.ID)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Issue signs a cookie value for the session id.
func (s *SessionService) Issue(sessionID string) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.TTL)
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat sesi")
	}
	return signed, expiresAt, nil
}

// Parse validates a cookie value and returns its session id.
func (s *SessionService) Parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.ErrUnauthorized.Message)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	return claims.SessionID, nil
}

// Load returns the stored session. A missing or expired session yields an empty one with the same id.
func (s *SessionService) Load(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return &models.Session{ID: sessionID}, nil
		}
		s.record("load", err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membaca sesi")
	}
	return session, nil
}

// Login authenticates against the backend. On success the user and backend credential are
// stored; on failure the extracted message is stored and the user cleared. Concurrent calls are
// not deduplicated, the last one to finish wins.
func (s *SessionService) Login(ctx context.Context, sessionID string, form forms.LoginForm) (*models.Session, error) {
	if err := forms.Validate(s.validator, &form); err != nil {
		return nil, err
	}
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Loading = true
	session.Error = ""
	if err := s.save(ctx, "login_pending", session); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	callErr := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/auth/login", JSON: form}, &raw)
	var payload loginPayload
	if callErr == nil {
		if err := decodeData(raw, &payload); err != nil {
			callErr = appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons login tidak dapat dibaca")
		} else if payload.User == nil {
			callErr = appErrors.New(appErrors.CodeUpstream, http.StatusBadGateway, "respons login tidak memuat data pengguna")
		} else if _, ok := roles.Parse(payload.User.Role); !ok {
			callErr = appErrors.ErrUnknownRole
		}
	}

	session.Loading = false
	if callErr != nil {
		session.User = nil
		session.Token = ""
		session.Error = appErrors.UserMessage(callErr)
		s.logger.Info("login failed", zap.String("email", form.Email), zap.Error(callErr))
	} else {
		session.User = payload.User
		session.Token = payload.Token
		if session.Token == "" {
			session.Token = payload.AccessToken
		}
		session.Error = ""
	}
	if err := s.save(ctx, "login", session); err != nil {
		return nil, err
	}
	if callErr != nil {
		return session, callErr
	}
	return session, nil
}

// GetCurrentUser re-hydrates the user from the stored backend credential, with the same
// success and failure contract as Login.
func (s *SessionService) GetCurrentUser(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Token == "" {
		return session, appErrors.ErrUnauthorized
	}

	var raw json.RawMessage
	callErr := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/auth/me", Token: session.Token}, &raw)
	var user models.User
	if callErr == nil {
		if err := decodeData(raw, &user); err != nil {
			callErr = appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons pengguna tidak dapat dibaca")
		} else if _, ok := roles.Parse(user.Role); !ok {
			callErr = appErrors.ErrUnknownRole
		}
	}
	session.Loading = false
	if callErr != nil {
		session.User = nil
		session.Error = appErrors.UserMessage(callErr)
		s.logger.Info("refresh current user failed", zap.String("session_id", sessionID), zap.Error(callErr))
	} else {
		session.User = &user
		session.Error = ""
	}
	if err := s.save(ctx, "me", session); err != nil {
		return nil, err
	}
	return session, callErr
}

// UpdateProfile sends the profile form and merges the returned fields into the stored user.
func (s *SessionService) UpdateProfile(ctx context.Context, sessionID string, form forms.ProfileForm) (*models.User, error) {
	if err := forms.Validate(s.validator, &form); err != nil {
		return nil, err
	}
	session, err := s.authenticated(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPut, Path: "/auth/profile", JSON: form, Token: session.Token}, &raw); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if err := decodeData(raw, &fields); err != nil {
		s.logger.Warn("profile response not decoded, using submitted values", zap.Error(err))
	}
	if len(fields) == 0 {
		fields = map[string]interface{}{"name": form.Name, "email": form.Email, "phone": form.Phone}
	}
	session.User.Merge(fields)
	if err := s.save(ctx, "profile", session); err != nil {
		return nil, err
	}
	return session.User, nil
}

// ChangePassword changes the signed-in user's password.
func (s *SessionService) ChangePassword(ctx context.Context, sessionID string, form forms.PasswordForm) error {
	if err := forms.Validate(s.validator, &form); err != nil {
		return err
	}
	session, err := s.authenticated(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodPut, Path: "/auth/password", JSON: form, Token: session.Token}, nil)
}

// ForgotPassword asks the backend to send a reset link.
func (s *SessionService) ForgotPassword(ctx context.Context, form forms.ForgotPasswordForm) error {
	if err := forms.Validate(s.validator, &form); err != nil {
		return err
	}
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/auth/forgot-password", JSON: form}, nil)
}

// LogOut tells the backend and resets the session. A backend failure is logged only.
func (s *SessionService) LogOut(ctx context.Context, sessionID string) error {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Token != "" {
		if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/auth/logout", Token: session.Token}, nil); err != nil {
			s.logger.Warn("backend logout failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return s.Reset(ctx, sessionID)
}

// Reset returns the session to its initial empty state.
func (s *SessionService) Reset(ctx context.Context, sessionID string) error {
	err := s.repo.Delete(ctx, sessionID)
	s.record("reset", err)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menghapus sesi")
	}
	return nil
}

// SetFlash stores a one-time message shown on the next page.
func (s *SessionService) SetFlash(ctx context.Context, sessionID, message string) error {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Flash = message
	return s.save(ctx, "flash", session)
}

// PopFlash returns and clears the flash message.
func (s *SessionService) PopFlash(ctx context.Context, sessionID string) string {
	session, err := s.Load(ctx, sessionID)
	if err != nil || session.Flash == "" {
		return ""
	}
	message := session.Flash
	session.Flash = ""
	if err := s.save(ctx, "flash", session); err != nil {
		s.logger.Warn("clear flash failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return message
}

// PurgeExpired removes expired sessions from stores that do not expire them on their own.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.PurgeExpired(ctx, s.now())
	s.record("purge", err)
	return n, err
}

func (s *SessionService) authenticated(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, appErrors.ErrUnauthorized
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, op string, session *models.Session) error {
	err := s.repo.Save(ctx, session, s.config.TTL)
	s.record(op, err)
	if err != nil {
		s.logger.Error("save session failed", zap.String("session_id", session.ID), zap.String("operation", op), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan sesi")
	}
	return nil
}

func (s *SessionService) record(op string, err error) {
	if s.metrics != nil {
		s.metrics.RecordSessionOperation(op, err)
	}
}
