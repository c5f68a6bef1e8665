package moderator

import (
	"errors"
	"time"

	"github.com/safespace/core/internal/models"
)

var (
	errCommentNotFound = errors.New("comment not found")
	errUserNotFound    = errors.New("user not found")
)

// ReviewDTO is a moderator's disposition for one comment.
type ReviewDTO struct {
	Note string `json:"note"`
}

type reviewedCommentResponse struct {
	ID               string     `json:"id"`
	PostID           string     `json:"post_id"`
	UserID           string     `json:"user_id"`
	Username         string     `json:"username,omitempty"`
	Text             string     `json:"text"`
	Status           string     `json:"status"`
	IsAbusive        int        `json:"is_abusive"`
	IsSpam           bool       `json:"is_spam"`
	ConfidenceScore  float64    `json:"confidence_score"`
	FlaggedWords     []string   `json:"flagged_words"`
	AutoReviewAction string     `json:"auto_review_action"`
	AutoReviewReason string     `json:"auto_review_reason"`
	SpamReasons      []string   `json:"spam_reasons"`
	SpamConfidence   int        `json:"spam_confidence"`
	ReviewedBy       *string    `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ModeratorNote    string     `json:"moderator_note,omitempty"`
	Created          time.Time  `json:"created"`
}

func toResponse(c *models.CommentModel) reviewedCommentResponse {
	r := reviewedCommentResponse{
		ID:               c.ID,
		PostID:           c.PostID,
		UserID:           c.UserID,
		Text:             c.Text,
		Status:           c.Status,
		IsAbusive:        c.IsAbusive,
		IsSpam:           c.IsSpam,
		ConfidenceScore:  c.ConfidenceScore,
		FlaggedWords:     c.FlaggedWords,
		AutoReviewAction: c.AutoReviewAction,
		AutoReviewReason: c.AutoReviewReason,
		SpamReasons:      c.SpamReasons,
		SpamConfidence:   c.SpamConfidence,
		ReviewedBy:       c.ReviewedBy,
		ReviewedAt:       c.ReviewedAt,
		ModeratorNote:    c.ModeratorNote,
		Created:          c.CreatedAt,
	}
	if c.User != nil {
		r.Username = c.User.Username
	}
	return r
}

// UserSummary aggregates one user's moderation record.
type UserSummary struct {
	UserID          string     `json:"user_id"`
	Username        string     `json:"username"`
	TotalComments   int64      `json:"total_comments"`
	AbusiveComments int64      `json:"abusive_comments"`
	SpamComments    int64      `json:"spam_comments"`
	AbuseRate       float64    `json:"abuse_rate"`
	WarnedAt        *time.Time `json:"warned_at,omitempty"`
	SuspendedAt     *time.Time `json:"suspended_at,omitempty"`
}

// OverviewStats is the platform-wide moderation snapshot.
type OverviewStats struct {
	TotalComments   int64 `json:"total_comments"`
	AbusiveComments int64 `json:"abusive_comments"`
	SpamComments    int64 `json:"spam_comments"`
	PendingReview   int64 `json:"pending_review"`
	HiddenComments  int64 `json:"hidden_comments"`
}
