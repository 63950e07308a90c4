package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/service"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type reviewService interface {
	Load(ctx context.Context, key models.ReviewKey, token string) (*models.WeeklyReview, error)
	CommonIssues(ctx context.Context, token string) ([]string, error)
	RefreshCommonIssues(ctx context.Context, token string) ([]string, error)
	SaveReview(ctx context.Context, review *models.WeeklyReview, form forms.ReviewForm, target models.ReviewStatus, token string) (*models.WeeklyReview, error)
	UpdateReviewStatus(ctx context.Context, review *models.WeeklyReview, target models.ReviewStatus, token string) (*models.WeeklyReview, error)
}

// ReviewView is the content of the weekly review page.
type ReviewView struct {
	BasePath     string               `json:"basePath"`
	Review       *models.WeeklyReview `json:"review"`
	Status       resources.Cell       `json:"status"`
	Editable     bool                 `json:"editable"`
	Fields       []view.Field         `json:"fields,omitempty"`
	CommonIssues []string             `json:"commonIssues,omitempty"`
	Transitions  []resources.Option   `json:"transitions,omitempty"`
}

// ReviewHandler serves the reviu mingguan workflow.
type ReviewHandler struct {
	reviews reviewService
	flash   flasher
	logger  *zap.Logger
	now     func() time.Time
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(reviews reviewService, flash flasher, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{reviews: reviews, flash: flash, logger: logger, now: time.Now}
}

// reviewKey reads sekolahId, minggu and tahun, defaulting to the user's school and the
// current ISO week.
func (h *ReviewHandler) reviewKey(c *gin.Context) models.ReviewKey {
	year, week := h.now().ISOWeek()
	key := models.ReviewKey{SchoolID: models.ID(c.Query("sekolahId")), Week: week, Year: year}
	if key.SchoolID == "" {
		if user := sessionFromContext(c).User; user != nil {
			key.SchoolID = user.SchoolID
		}
	}
	if w, err := strconv.Atoi(c.Query("minggu")); err == nil && w >= 1 && w <= 53 {
		key.Week = w
	}
	if y, err := strconv.Atoi(c.Query("tahun")); err == nil && y > 2000 {
		key.Year = y
	}
	return key
}

func reviewBase(c *gin.Context) string {
	return roles.BasePath(sessionFromContext(c).Role()) + "/" + roles.ResourceReviu
}

func reviewURL(c *gin.Context, key models.ReviewKey) string {
	q := url.Values{}
	q.Set("sekolahId", key.SchoolID.String())
	q.Set("minggu", strconv.Itoa(key.Week))
	q.Set("tahun", strconv.Itoa(key.Year))
	return reviewBase(c) + "?" + q.Encode()
}

// Page godoc
// @Summary Weekly review of a school
// @Tags Review
// @Produce html,json
// @Param role path string true "Role segment"
// @Param sekolahId query string false "School ID"
// @Param minggu query int false "ISO week"
// @Param tahun query int false "ISO year"
// @Success 200 {object} response.Envelope
// @Router /{role}/reviu [get]
func (h *ReviewHandler) Page(c *gin.Context) {
	if !h.allowed(c, roles.ActionView) {
		return
	}
	key := h.reviewKey(c)
	if key.SchoolID == "" {
		h.render(c, http.StatusOK, &models.WeeklyReview{Week: key.Week, Year: key.Year}, nil, nil)
		return
	}
	review, err := h.reviews.Load(c.Request.Context(), key, sessionFromContext(c).Token)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	h.render(c, http.StatusOK, review, nil, nil)
}

// Save godoc
// @Summary Save the review as draft or submit it
// @Tags Review
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param target formData string true "draft or submitted"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /{role}/reviu [post]
func (h *ReviewHandler) Save(c *gin.Context) {
	if !h.allowed(c, roles.ActionEdit) {
		return
	}
	key := h.reviewKey(c)
	token := sessionFromContext(c).Token
	review, err := h.reviews.Load(c.Request.Context(), key, token)
	if err != nil {
		fail(c, h.flash, reviewURL(c, key), err)
		return
	}

	var form forms.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, review, &form, bindError(err))
		return
	}
	target := models.ReviewStatus(c.DefaultPostForm("target", string(models.ReviewDraft)))
	saved, err := h.reviews.SaveReview(c.Request.Context(), review, form, target, token)
	if err != nil {
		if isValidation(err) {
			h.render(c, statusOf(err), review, &form, err)
			return
		}
		fail(c, h.flash, reviewURL(c, key), err)
		return
	}

	message := "Reviu disimpan sebagai draft"
	if saved.Status == models.ReviewSubmitted {
		message = "Reviu berhasil diajukan"
	}
	finish(c, h.flash, reviewURL(c, key), message)
}

// RefreshIssues godoc
// @Summary Reload the common technical issue catalog
// @Tags Review
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 303
// @Failure 502 {object} response.Envelope
// @Router /{role}/reviu/kendala [post]
func (h *ReviewHandler) RefreshIssues(c *gin.Context) {
	if !h.allowed(c, roles.ActionEdit) {
		return
	}
	key := h.reviewKey(c)
	issues, err := h.reviews.RefreshCommonIssues(c.Request.Context(), sessionFromContext(c).Token)
	if err != nil {
		fail(c, h.flash, reviewURL(c, key), err)
		return
	}
	finish(c, h.flash, reviewURL(c, key), fmt.Sprintf("%d kendala umum dimuat ulang", len(issues)))
}

// Status godoc
// @Summary Approve or reopen a saved review
// @Description Approving a review that has not been saved is rejected without calling the backend.
// @Tags Review
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param status formData string true "approved or submitted"
// @Success 303
// @Failure 409 {object} response.Envelope
// @Router /{role}/reviu/status [post]
func (h *ReviewHandler) Status(c *gin.Context) {
	if !h.allowed(c, roles.ActionStatus) {
		return
	}
	key := h.reviewKey(c)
	token := sessionFromContext(c).Token
	review, err := h.reviews.Load(c.Request.Context(), key, token)
	if err != nil {
		fail(c, h.flash, reviewURL(c, key), err)
		return
	}
	target := models.ReviewStatus(c.PostForm("status"))
	if _, err := h.reviews.UpdateReviewStatus(c.Request.Context(), review, target, token); err != nil {
		if errors.Is(err, appErrors.ErrReviewNotSaved) {
			h.logger.Debug("status change on unsaved review", zap.String("sekolah_id", key.SchoolID.String()))
		}
		fail(c, h.flash, reviewURL(c, key), err)
		return
	}
	message := "Reviu disetujui"
	if target == models.ReviewSubmitted {
		message = "Reviu dibuka kembali"
	}
	finish(c, h.flash, reviewURL(c, key), message)
}

func (h *ReviewHandler) allowed(c *gin.Context, action roles.Action) bool {
	if roles.Allows(sessionFromContext(c).Role(), roles.ResourceReviu, action) {
		return true
	}
	view.RenderError(c, sessionFromContext(c), appErrors.ErrForbidden)
	return false
}

func (h *ReviewHandler) render(c *gin.Context, status int, review *models.WeeklyReview, form *forms.ReviewForm, err error) {
	if err != nil && wantsJSON(c) {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	session := sessionFromContext(c)
	role := session.Role()

	if form == nil {
		form = &forms.ReviewForm{Notes: review.Notes, Recommendations: review.Recommendations, TechnicalIssues: review.TechnicalIssues}
	}
	content := ReviewView{
		BasePath: reviewBase(c),
		Review:   review,
		Editable: review.Editable() && roles.Allows(role, roles.ResourceReviu, roles.ActionEdit),
	}
	current := review.Status
	if current == "" {
		current = models.ReviewDraft
	}
	if badge, berr := current.Badge(); berr == nil {
		content.Status = resources.Cell{Text: badge.Label, Badge: &badge}
	} else {
		content.Status = resources.Cell{Text: string(current)}
	}
	if content.Editable {
		content.Fields = view.BuildForm(form, forms.Fields(err), false)
		if review.SchoolID != "" {
			issues, ierr := h.reviews.CommonIssues(c.Request.Context(), session.Token)
			if ierr != nil {
				h.logger.Warn("load common issues failed", zap.Error(ierr))
			}
			content.CommonIssues = issues
		}
	}
	if review.SchoolID != "" && roles.Allows(role, roles.ResourceReviu, roles.ActionStatus) {
		content.Transitions = reviewTransitions(review)
	}

	p := newPage(c, h.flash, "Reviu Mingguan", roles.ResourceReviu)
	if err != nil && forms.Fields(err) == nil {
		p.Error = appErrors.UserMessage(err)
	}
	p.Content = content
	view.Render(c, status, view.TemplateReview, p)
}

// reviewTransitions lists the status buttons for a review. Unsaved reviews still offer
// approval so the user is told to save first.
func reviewTransitions(review *models.WeeklyReview) []resources.Option {
	var out []resources.Option
	if !review.Saved() || service.CanTransition(review.Status, models.ReviewApproved) {
		out = append(out, resources.Option{Value: string(models.ReviewApproved), Label: "Setujui"})
	}
	if review.Status == models.ReviewApproved && service.CanTransition(review.Status, models.ReviewSubmitted) {
		out = append(out, resources.Option{Value: string(models.ReviewSubmitted), Label: "Buka Kembali"})
	}
	return out
}
