package moderation

import (
	"context"
	"errors"
	"time"
)

// Auto-review actions for the abuse path.
const (
	ActionApprove     = "approve"
	ActionAutoApprove = "auto_approve"
	ActionKeepHidden  = "keep_hidden"
	ActionHumanReview = "human_review_needed"
)

// Auto-review reasons attached to abuse verdicts.
const (
	ReasonEmptyText        = "empty_text"
	ReasonNoAbusiveWords   = "no_abusive_words"
	ReasonClearlyAbusive   = "clearly_abusive_pattern_or_highly_abusive_words"
	ReasonPositiveContext  = "positive_context_detected"
	ReasonPoliteTone       = "polite_tone_detected"
	ReasonHighRiskWord     = "high_risk_word_detected"
	ReasonUncertainContext = "uncertain_context"
)

// PhraseAbuse marks a verdict where a phrase-level pattern fired without any
// literal lexicon word matching.
const PhraseAbuse = "phrase_abuse"

// Actions for the spam path.
const (
	SpamActionAllow    = "allow"
	SpamActionWarning  = "warning"
	SpamActionAutoHide = "auto_hide"
)

// Spam verdict reasons.
const (
	SpamReasonPromotionalRepetition = "promotional_repetition_same_post"
	SpamReasonExcessiveRepetition   = "excessive_repetition_same_post"
	SpamReasonPromotionalWarning    = "promotional_warning"
	SpamReasonRepetitionWarning     = "repetition_warning"
)

// Comment statuses as persisted by the orchestrator.
const (
	StatusApproved      = "approved"
	StatusHidden        = "hidden"
	StatusPendingReview = "pending_review"
	StatusDeleted       = "deleted"
)

var (
	ErrEmptyText   = errors.New("comment text must not be empty")
	ErrTextTooLong = errors.New("comment text exceeds maximum length")
)

// AbuseVerdict is the abuse classifier's disposition for one text.
type AbuseVerdict struct {
	IsAbusive    int      `json:"is_abusive"`
	Confidence   float64  `json:"confidence"`
	FlaggedWords []string `json:"flagged_words"`
	Action       string   `json:"action"`
	Reason       string   `json:"reason"`
}

// ContextScore carries the contextual signals computed for one text.
type ContextScore struct {
	PositiveContext     int
	ClearlyAbusive      int
	HighlyAbusive       int
	Politeness          int
	LikelyFalsePositive bool
}

// SpamVerdict is the spam tracker's disposition for one submission.
type SpamVerdict struct {
	IsSpam            bool     `json:"is_spam"`
	Reasons           []string `json:"reasons"`
	Confidence        int      `json:"confidence"`
	Action            string   `json:"action"`
	HideAll           bool     `json:"hide_all"`
	SimilarCommentIDs []string `json:"similar_comment_ids"`
	Message           string   `json:"message"`
}

// HistoryComment is a prior comment by the same user on the same post.
type HistoryComment struct {
	ID        string
	Text      string
	Status    string
	CreatedAt time.Time
}

// HistoryProvider supplies a user's prior comments on a post, most recent
// first. Comments with status "deleted" must already be filtered out.
type HistoryProvider interface {
	ListComments(ctx context.Context, userID, postID string) ([]HistoryComment, error)
}

// CommentDraft is the fully decided comment handed to the persister.
type CommentDraft struct {
	PostID           string
	UserID           string
	Text             string
	Status           string
	IsAbusive        int
	IsSpam           bool
	ConfidenceScore  float64
	FlaggedWords     []string
	AutoReviewAction string
	AutoReviewReason string
	SpamReasons      []string
	SpamConfidence   int
}

// Persister owns storage for moderated comments. BulkHide and Save for a
// single submission must commit together.
type Persister interface {
	Save(ctx context.Context, draft CommentDraft) (string, error)
	BulkHide(ctx context.Context, ids []string) error
}

// Outcome is what the orchestrator reports back for a submission.
type Outcome struct {
	CommentID string       `json:"comment_id"`
	Status    string       `json:"status"`
	Abuse     AbuseVerdict `json:"abuse"`
	Spam      *SpamVerdict `json:"spam,omitempty"`
	Message   string       `json:"message,omitempty"`
}
