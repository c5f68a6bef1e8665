package moderation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config carries the engine thresholds. Zero values are replaced by the
// defaults at construction.
type Config struct {
	MaxCommentLength       int
	SimilarityThreshold    float64
	PromotionalWarnRepeats int
	PromotionalHideRepeats int
	RepetitionWarnRepeats  int
	RepetitionHideRepeats  int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		MaxCommentLength:       1000,
		SimilarityThreshold:    0.85,
		PromotionalWarnRepeats: 3,
		PromotionalHideRepeats: 4,
		RepetitionWarnRepeats:  5,
		RepetitionHideRepeats:  6,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.MaxCommentLength <= 0 {
		c.MaxCommentLength = d.MaxCommentLength
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = d.SimilarityThreshold
	}
	if c.PromotionalWarnRepeats <= 0 {
		c.PromotionalWarnRepeats = d.PromotionalWarnRepeats
	}
	if c.PromotionalHideRepeats <= 0 {
		c.PromotionalHideRepeats = d.PromotionalHideRepeats
	}
	if c.RepetitionWarnRepeats <= 0 {
		c.RepetitionWarnRepeats = d.RepetitionWarnRepeats
	}
	if c.RepetitionHideRepeats <= 0 {
		c.RepetitionHideRepeats = d.RepetitionHideRepeats
	}
}

// Engine is the classification and orchestration core. The lexicon, compiled
// matcher and thresholds are read-only after construction, so a single Engine
// is safe for concurrent use.
type Engine struct {
	cfg     Config
	lexicon *Lexicon
	matcher *Matcher
	logger  *zap.Logger

	// OnAbusive, when set, is fired by the caller once an abusive comment's
	// transaction has committed, so the notified check always sees the
	// comment that triggered it. It must not block; failures in it never
	// affect the comment decision.
	OnAbusive func(userID string)
}

// NewEngine builds an engine over the given lexicon. A nil lexicon falls back
// to the built-in word set.
func NewEngine(cfg Config, lexicon *Lexicon, logger *zap.Logger) *Engine {
	cfg.applyDefaults()
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		lexicon: lexicon,
		matcher: NewMatcher(lexicon),
		logger:  logger,
	}
}

// Lexicon returns the word set the engine was built with.
func (e *Engine) Lexicon() *Lexicon { return e.lexicon }

// ClassifyAbuse runs the abuse pipeline for one text: lexical matching,
// context analysis, then the decision table. Pure; same text, same verdict.
func (e *Engine) ClassifyAbuse(text string) AbuseVerdict {
	matches := e.matcher.Match(text)
	score := AnalyzeContext(text)
	return Decide(text, matches, score)
}

// ClassifySpam evaluates a submission against the user's history on the post.
func (e *Engine) ClassifySpam(ctx context.Context, text, userID, postID string, history HistoryProvider) (SpamVerdict, error) {
	prior, err := history.ListComments(ctx, userID, postID)
	if err != nil {
		return SpamVerdict{}, fmt.Errorf("load comment history: %w", err)
	}
	return e.DetectSpam(text, prior), nil
}

// Submission is one comment entering moderation.
type Submission struct {
	Text   string
	UserID string
	PostID string
}

// Moderate runs the full pipeline for a submission and persists the decided
// comment. Abuse pre-empts spam: when the abuse verdict is abusive the spam
// tracker is never consulted. Bulk-hide of prior promotional repeats happens
// before the new comment's save so both land in the persister's transaction.
func (e *Engine) Moderate(ctx context.Context, sub Submission, history HistoryProvider, persist Persister) (*Outcome, error) {
	if strings.TrimSpace(sub.Text) == "" {
		return nil, ErrEmptyText
	}
	if len([]rune(sub.Text)) > e.cfg.MaxCommentLength {
		return nil, ErrTextTooLong
	}

	abuse := e.ClassifyAbuse(sub.Text)

	draft := CommentDraft{
		PostID:           sub.PostID,
		UserID:           sub.UserID,
		Text:             sub.Text,
		IsAbusive:        abuse.IsAbusive,
		ConfidenceScore:  abuse.Confidence,
		FlaggedWords:     abuse.FlaggedWords,
		AutoReviewAction: abuse.Action,
		AutoReviewReason: abuse.Reason,
	}

	if abuse.IsAbusive == 1 {
		draft.Status = StatusForAction(abuse.Action)
		id, err := persist.Save(ctx, draft)
		if err != nil {
			return nil, fmt.Errorf("save comment: %w", err)
		}
		e.logger.Info("comment flagged as abusive",
			zap.String("comment_id", id),
			zap.String("user_id", sub.UserID),
			zap.String("action", abuse.Action),
			zap.Float64("confidence", abuse.Confidence))
		return &Outcome{CommentID: id, Status: draft.Status, Abuse: abuse}, nil
	}

	spam, err := e.ClassifySpam(ctx, sub.Text, sub.UserID, sub.PostID, history)
	if err != nil {
		return nil, err
	}

	draft.IsSpam = spam.IsSpam
	draft.SpamReasons = spam.Reasons
	draft.SpamConfidence = spam.Confidence

	message := ""
	switch {
	case spam.IsSpam:
		draft.Status = StatusHidden
		message = spam.Message
		if spam.HideAll && len(spam.SimilarCommentIDs) > 0 {
			if err := persist.BulkHide(ctx, spam.SimilarCommentIDs); err != nil {
				return nil, fmt.Errorf("hide prior spam comments: %w", err)
			}
		}
	case spam.Action == SpamActionWarning:
		draft.Status = StatusApproved
		message = spam.Message
	default:
		draft.Status = StatusApproved
	}

	id, err := persist.Save(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	if spam.IsSpam {
		e.logger.Info("comment hidden as spam",
			zap.String("comment_id", id),
			zap.String("user_id", sub.UserID),
			zap.Strings("reasons", spam.Reasons),
			zap.Bool("hide_all", spam.HideAll))
	}
	return &Outcome{CommentID: id, Status: draft.Status, Abuse: abuse, Spam: &spam, Message: message}, nil
}
