package models

import "time"

// Comment statuses. The moderation engine decides which one a new comment
// gets; moderators may change it afterwards.
const (
	CommentApproved      = "approved"
	CommentHidden        = "hidden"
	CommentPendingReview = "pending_review"
	CommentDeleted       = "deleted"
)

// CommentModel is a moderated comment. The classifier outputs are persisted
// alongside the text for moderator review and observability.
type CommentModel struct {
	Base
	PostID string     `json:"post_id" gorm:"type:char(36);index:idx_comments_post_user;not null"`
	UserID string     `json:"user_id" gorm:"type:char(36);index:idx_comments_post_user;not null"`
	User   *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Text   string     `json:"text"    gorm:"type:text;not null"`
	Status string     `json:"status"  gorm:"default:approved;index"`

	IsAbusive        int         `json:"is_abusive"         gorm:"default:0"`
	IsSpam           bool        `json:"is_spam"            gorm:"default:false"`
	ConfidenceScore  float64     `json:"confidence_score"   gorm:"default:0"`
	FlaggedWords     StringArray `json:"flagged_words"      gorm:"type:json"`
	AutoReviewAction string      `json:"auto_review_action"`
	AutoReviewReason string      `json:"auto_review_reason"`
	SpamReasons      StringArray `json:"spam_reasons"       gorm:"type:json"`
	SpamConfidence   int         `json:"spam_confidence"    gorm:"default:0"`

	ReviewedBy    *string    `json:"reviewed_by"    gorm:"type:char(36);index"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	ModeratorNote string     `json:"moderator_note"`
}

func (CommentModel) TableName() string { return "comments" }
