package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

var reviewTransitions = map[models.ReviewStatus][]models.ReviewStatus{
	models.ReviewDraft:     {models.ReviewDraft, models.ReviewSubmitted},
	models.ReviewSubmitted: {models.ReviewSubmitted, models.ReviewApproved},
	models.ReviewApproved:  {models.ReviewSubmitted},
}

// CanTransition reports whether a review may move from one status to another.
// A review without a status is a draft.
func CanTransition(from, to models.ReviewStatus) bool {
	if from == "" {
		from = models.ReviewDraft
	}
	for _, allowed := range reviewTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

const commonIssuesCacheKey = "reviews:common-issues"

// ReviewService drives the weekly review workflow.
type ReviewService struct {
	backend   backendClient
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
}

// NewReviewService constructs a ReviewService.
func NewReviewService(backend backendClient, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = forms.NewValidator()
	}
	return &ReviewService{backend: backend, validator: validate, logger: logger}
}

func reviewQuery(key models.ReviewKey) url.Values {
	return url.Values{
		"sekolahId": {key.SchoolID.String()},
		"minggu":    {strconv.Itoa(key.Week)},
		"tahun":     {strconv.Itoa(key.Year)},
	}
}

// Load returns the review of a school week with its aggregate rows. A week without a review
// yields an unsaved draft.
func (s *ReviewService) Load(ctx context.Context, key models.ReviewKey, token string) (*models.WeeklyReview, error) {
	if key.SchoolID == "" || key.Week < 1 || key.Week > 53 || key.Year < 2000 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sekolah dan minggu reviu wajib dipilih")
	}
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/reviews", Query: reviewQuery(key), Token: token}, &raw); err != nil {
		return nil, err
	}
	review, err := decodeReview(raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons reviu tidak dapat dibaca")
	}
	if review == nil {
		review = &models.WeeklyReview{Status: models.ReviewDraft}
	}
	review.SchoolID, review.Week, review.Year = key.SchoolID, key.Week, key.Year
	if review.Status == "" {
		review.Status = models.ReviewDraft
	}

	var aggregate json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/reviews/aggregate", Query: reviewQuery(key), Token: token}, &aggregate); err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := decodeData(aggregate, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons agregat tidak dapat dibaca")
	}
	review.Aggregate = rows
	return review, nil
}

func decodeReview(raw json.RawMessage) (*models.WeeklyReview, error) {
	var list []models.WeeklyReview
	if err := decodeData(raw, &list); err == nil {
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}
	var single models.WeeklyReview
	if err := decodeData(raw, &single); err != nil {
		return nil, err
	}
	if !single.Saved() {
		return nil, nil
	}
	return &single, nil
}

// SetCache enables caching of the common issue catalog.
func (s *ReviewService) SetCache(cache *CacheService) {
	s.cache = cache
}

// CommonIssues returns the catalog of common technical issues offered as tags.
func (s *ReviewService) CommonIssues(ctx context.Context, token string) ([]string, error) {
	var cached []string
	if s.cache.Get(ctx, commonIssuesCacheKey, &cached) {
		return cached, nil
	}
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/reviews/common-issues", Token: token}, &raw); err != nil {
		return nil, err
	}
	var items []interface{}
	if err := decodeData(raw, &items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons kendala tidak dapat dibaca")
	}
	catalog := &models.WeeklyReview{}
	for _, item := range items {
		if text := resources.Text(item); text != "-" {
			catalog.AddIssue(text)
		}
	}
	s.cache.Set(ctx, commonIssuesCacheKey, catalog.TechnicalIssues, 0)
	return catalog.TechnicalIssues, nil
}

// RefreshCommonIssues drops the cached catalog and loads it again from the backend.
func (s *ReviewService) RefreshCommonIssues(ctx context.Context, token string) ([]string, error) {
	s.cache.Invalidate(ctx, commonIssuesCacheKey)
	return s.CommonIssues(ctx, token)
}

// SaveReview persists the form with a target status of draft or submitted. It creates the
// review when it has no id yet and updates it otherwise. Approved reviews are locked.
func (s *ReviewService) SaveReview(ctx context.Context, review *models.WeeklyReview, form forms.ReviewForm, target models.ReviewStatus, token string) (*models.WeeklyReview, error) {
	if review == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reviu tidak valid")
	}
	if !review.Editable() {
		return nil, appErrors.ErrReviewLocked
	}
	if target != models.ReviewDraft && target != models.ReviewSubmitted {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "reviu hanya dapat disimpan sebagai draft atau diajukan")
	}
	if !CanTransition(review.Status, target) {
		return nil, appErrors.ErrInvalidTransition
	}
	if err := forms.Validate(s.validator, &form); err != nil {
		return nil, err
	}

	next := *review
	next.Notes = form.Notes
	next.Recommendations = form.Recommendations
	next.TechnicalIssues = nil
	for _, tag := range form.TechnicalIssues {
		next.AddIssue(tag)
	}
	for _, tag := range form.RemoveIssues {
		next.RemoveIssue(tag)
	}
	next.Status = target
	next.Aggregate = nil

	req := apiclient.Request{Method: http.MethodPost, Path: "/reviews", JSON: next, Token: token}
	if review.Saved() {
		req.Method = http.MethodPut
		req.Path = "/reviews/" + url.PathEscape(review.ID.String())
	}
	var raw json.RawMessage
	if err := s.backend.Do(ctx, req, &raw); err != nil {
		return nil, err
	}
	var saved models.WeeklyReview
	if err := decodeData(raw, &saved); err != nil {
		s.logger.Debug("save review response not decoded", zap.Error(err))
	}
	if saved.ID != "" {
		next.ID = saved.ID
	}
	next.Aggregate = review.Aggregate
	*review = next
	return review, nil
}

// UpdateReviewStatus changes only the status of a saved review.
func (s *ReviewService) UpdateReviewStatus(ctx context.Context, review *models.WeeklyReview, target models.ReviewStatus, token string) (*models.WeeklyReview, error) {
	if !review.Saved() {
		return nil, appErrors.ErrReviewNotSaved
	}
	if !target.Valid() {
		return nil, appErrors.ErrInvalidStatus
	}
	if !CanTransition(review.Status, target) {
		return nil, appErrors.ErrInvalidTransition
	}
	body := map[string]models.ReviewStatus{"status": target}
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPatch, Path: "/reviews/" + url.PathEscape(review.ID.String()) + "/status", JSON: body, Token: token}, nil); err != nil {
		return nil, err
	}
	review.Status = target
	s.logger.Info("review status changed", zap.String("review_id", review.ID.String()), zap.String("status", string(target)))
	return review, nil
}
