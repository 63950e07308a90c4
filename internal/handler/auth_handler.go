package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type sessionService interface {
	flasher
	Login(ctx context.Context, sessionID string, form forms.LoginForm) (*models.Session, error)
	GetCurrentUser(ctx context.Context, sessionID string) (*models.Session, error)
	UpdateProfile(ctx context.Context, sessionID string, form forms.ProfileForm) (*models.User, error)
	ChangePassword(ctx context.Context, sessionID string, form forms.PasswordForm) error
	ForgotPassword(ctx context.Context, form forms.ForgotPasswordForm) error
	LogOut(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) error
}

// AuthHandler serves the login, password and profile pages.
type AuthHandler struct {
	sessions sessionService
	logger   *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(sessions sessionService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{sessions: sessions, logger: logger}
}

func bindError(err error) error {
	return appErrors.Wrap(err, appErrors.CodeValidation, http.StatusBadRequest, "data yang dikirim tidak valid")
}

// LoginPage godoc
// @Summary Login page
// @Description Signed-in sessions are sent to their dashboard. A session holding only a backend
// @Description credential is re-hydrated first.
// @Tags Authentication
// @Produce html,json
// @Success 200 {object} response.Envelope
// @Success 303
// @Router / [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	session := sessionFromContext(c)
	if session.User == nil && session.Token != "" && session.ID != "" {
		refreshed, err := h.sessions.GetCurrentUser(c.Request.Context(), session.ID)
		if err != nil {
			h.logger.Debug("re-hydrate session failed", zap.Error(err))
		}
		if refreshed != nil {
			session = refreshed
		}
	}
	ok, err := h.signedIn(c, session)
	if ok {
		view.Redirect(c, roles.DashboardPath(session.Role()), "")
		return
	}
	if err != nil {
		h.renderLogin(c, statusOf(err), forms.LoginForm{}, err, "")
		return
	}
	h.renderLogin(c, http.StatusOK, forms.LoginForm{}, nil, session.Error)
}

// Login godoc
// @Summary Authenticate against the backend
// @Tags Authentication
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, form, bindError(err), "")
		return
	}
	session, err := h.sessions.Login(c.Request.Context(), sessionFromContext(c).ID, form)
	if err == nil {
		var ok bool
		if ok, err = h.signedIn(c, session); !ok && err == nil {
			err = appErrors.ErrUnauthorized
		}
	}
	if err != nil {
		form.Password = ""
		h.renderLogin(c, statusOf(err), form, err, "")
		return
	}
	view.Redirect(c, roles.DashboardPath(session.Role()), "")
}

// signedIn reports whether session may enter its dashboard. A user whose role has no dashboard
// is signed out, otherwise the login page would redirect to itself.
func (h *AuthHandler) signedIn(c *gin.Context, session *models.Session) (bool, error) {
	if !session.Authenticated() {
		return false, nil
	}
	if _, ok := roles.Parse(session.Role()); ok {
		return true, nil
	}
	h.logger.Warn("signing out session with unknown role", zap.String("role", session.Role()))
	if session.ID != "" {
		if err := h.sessions.Reset(c.Request.Context(), session.ID); err != nil {
			h.logger.Warn("reset session failed", zap.Error(err))
		}
	}
	return false, appErrors.ErrUnknownRole
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, form forms.LoginForm, err error, message string) {
	if err != nil && wantsJSON(c) {
		view.RenderError(c, nil, err)
		return
	}
	p := view.NewPage(nil, "Masuk", "")
	if err != nil && forms.Fields(err) == nil {
		message = appErrors.UserMessage(err)
	}
	p.Error = message
	p.Content = view.Form{Title: "Masuk", Action: "/login", Fields: view.BuildForm(&form, forms.Fields(err), false)}
	view.Render(c, status, view.TemplateLogin, p)
}

// ForgotPage godoc
// @Summary Forgot password page
// @Tags Authentication
// @Produce html
// @Router /forgot/password [get]
func (h *AuthHandler) ForgotPage(c *gin.Context) {
	p := view.NewPage(nil, "Lupa Password", "")
	p.Content = view.Form{Title: "Lupa Password", Action: "/forgot/password", Fields: view.BuildForm(&forms.ForgotPasswordForm{}, nil, false)}
	view.Render(c, http.StatusOK, view.TemplateForgot, p)
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags Authentication
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param email formData string true "Email"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forgot/password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var form forms.ForgotPasswordForm
	err := c.ShouldBind(&form)
	if err != nil {
		err = bindError(err)
	} else {
		err = h.sessions.ForgotPassword(c.Request.Context(), form)
	}

	p := view.NewPage(nil, "Lupa Password", "")
	status := http.StatusOK
	if err != nil {
		if wantsJSON(c) {
			view.RenderError(c, nil, err)
			return
		}
		status = statusOf(err)
		if forms.Fields(err) == nil {
			p.Error = appErrors.UserMessage(err)
		}
	} else {
		p.Flash = "Tautan reset password telah dikirim ke email Anda"
		form = forms.ForgotPasswordForm{}
	}
	p.Content = view.Form{Title: "Lupa Password", Action: "/forgot/password", Fields: view.BuildForm(&form, forms.Fields(err), false)}
	view.Render(c, status, view.TemplateForgot, p)
}

// Logout godoc
// @Summary End the session
// @Tags Authentication
// @Produce html,json
// @Success 303
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessionFromContext(c)
	if session.ID != "" {
		if err := h.sessions.LogOut(c.Request.Context(), session.ID); err != nil {
			h.logger.Error("logout failed", zap.String("session_id", session.ID), zap.Error(err))
		}
	}
	view.Redirect(c, roles.LoginPath, "")
}

// Profile godoc
// @Summary Profile page of the signed-in user
// @Tags Profile
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 200 {object} response.Envelope
// @Router /{role}/profil [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	user := sessionFromContext(c).User
	form := forms.ProfileForm{}
	if user != nil {
		form = forms.ProfileForm{Name: user.Name, Email: user.Email, Phone: user.Phone}
	}
	h.renderProfile(c, http.StatusOK, form, nil, nil)
}

// UpdateProfile godoc
// @Summary Update the signed-in user's profile
// @Tags Profile
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Router /{role}/profil [post]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var form forms.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderProfile(c, http.StatusBadRequest, form, bindError(err), nil)
		return
	}
	if _, err := h.sessions.UpdateProfile(c.Request.Context(), sessionFromContext(c).ID, form); err != nil {
		h.renderProfile(c, statusOf(err), form, err, nil)
		return
	}
	finish(c, h.sessions, h.profilePath(c), "Profil berhasil diperbarui")
}

// ChangePassword godoc
// @Summary Change the signed-in user's password
// @Tags Profile
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Router /{role}/profil/password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var form forms.PasswordForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderProfile(c, http.StatusBadRequest, forms.ProfileForm{}, nil, bindError(err))
		return
	}
	if err := h.sessions.ChangePassword(c.Request.Context(), sessionFromContext(c).ID, form); err != nil {
		user := sessionFromContext(c).User
		profile := forms.ProfileForm{}
		if user != nil {
			profile = forms.ProfileForm{Name: user.Name, Email: user.Email, Phone: user.Phone}
		}
		h.renderProfile(c, statusOf(err), profile, nil, err)
		return
	}
	finish(c, h.sessions, h.profilePath(c), "Password berhasil diubah")
}

// ProfileView is the content of the profile page.
type ProfileView struct {
	ProfilePath  string       `json:"profilePath"`
	PasswordPath string       `json:"passwordPath"`
	User         *models.User `json:"user"`
	Profile      []view.Field `json:"profile"`
	Password     []view.Field `json:"password"`
}

func (h *AuthHandler) profilePath(c *gin.Context) string {
	return roles.BasePath(sessionFromContext(c).Role()) + "/profil"
}

func (h *AuthHandler) renderProfile(c *gin.Context, status int, form forms.ProfileForm, profileErr, passwordErr error) {
	if wantsJSON(c) {
		if profileErr != nil {
			view.RenderError(c, sessionFromContext(c), profileErr)
			return
		}
		if passwordErr != nil {
			view.RenderError(c, sessionFromContext(c), passwordErr)
			return
		}
	}
	p := newPage(c, h.sessions, "Profil", "profil")
	for _, err := range []error{profileErr, passwordErr} {
		if err != nil && forms.Fields(err) == nil {
			p.Error = appErrors.UserMessage(err)
		}
	}
	path := h.profilePath(c)
	p.Content = ProfileView{
		ProfilePath:  path,
		PasswordPath: path + "/password",
		User:         sessionFromContext(c).User,
		Profile:      view.BuildForm(&form, forms.Fields(profileErr), false),
		Password:     view.BuildForm(&forms.PasswordForm{}, forms.Fields(passwordErr), false),
	}
	view.Render(c, status, view.TemplateProfile, p)
}
