package models

import "strings"

// WeeklyReview is the reviu mingguan of one school for one ISO week.
// Aggregate rows are computed by the backend and rendered as-is.
type WeeklyReview struct {
	ID              ID                       `json:"id,omitempty"`
	SchoolID        ID                       `json:"sekolahId"`
	Week            int                      `json:"minggu"`
	Year            int                      `json:"tahun"`
	Aggregate       []map[string]interface{} `json:"aggregate,omitempty"`
	Notes           string                   `json:"catatan"`
	Recommendations string                   `json:"rekomendasi"`
	TechnicalIssues []string                 `json:"kendalaTeknis"`
	Status          ReviewStatus             `json:"status"`
}

// Saved reports whether the review has been persisted by the backend.
func (r *WeeklyReview) Saved() bool {
	return r != nil && r.ID != ""
}

// Editable reports whether notes, recommendations and issues may be changed.
func (r *WeeklyReview) Editable() bool {
	return r != nil && r.Status != ReviewApproved
}

// AddIssue adds a technical issue tag. Blank and already present tags are ignored.
func (r *WeeklyReview) AddIssue(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, existing := range r.TechnicalIssues {
		if existing == tag {
			return false
		}
	}
	r.TechnicalIssues = append(r.TechnicalIssues, tag)
	return true
}

// RemoveIssue removes the tag that matches exactly.
func (r *WeeklyReview) RemoveIssue(tag string) bool {
	for i, existing := range r.TechnicalIssues {
		if existing == tag {
			r.TechnicalIssues = append(r.TechnicalIssues[:i], r.TechnicalIssues[i+1:]...)
			return true
		}
	}
	return false
}

// ReviewKey scopes a review to a school and ISO week.
type ReviewKey struct {
	SchoolID ID
	Week     int
	Year     int
}
