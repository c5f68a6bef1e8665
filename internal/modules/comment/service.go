package comment

import (
	"context"
	"errors"

	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/moderation"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	engine *moderation.Engine
}

func NewService(db *gorm.DB, engine *moderation.Engine) *Service {
	return &Service{db: db, engine: engine}
}

// txStore adapts one GORM transaction to the engine's history and persistence
// ports, so a bulk-hide and the new comment's save commit together.
type txStore struct {
	tx *gorm.DB
}

func (s txStore) ListComments(ctx context.Context, userID, postID string) ([]moderation.HistoryComment, error) {
	var rows []models.CommentModel
	err := s.tx.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND status <> ?", userID, postID, models.CommentDeleted).
		Order("created_at DESC").
		Limit(historyWindow).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	prior := make([]moderation.HistoryComment, len(rows))
	for i, row := range rows {
		prior[i] = moderation.HistoryComment{
			ID:        row.ID,
			Text:      row.Text,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
		}
	}
	return prior, nil
}

func (s txStore) Save(ctx context.Context, draft moderation.CommentDraft) (string, error) {
	c := models.CommentModel{
		PostID:           draft.PostID,
		UserID:           draft.UserID,
		Text:             draft.Text,
		Status:           draft.Status,
		IsAbusive:        draft.IsAbusive,
		IsSpam:           draft.IsSpam,
		ConfidenceScore:  draft.ConfidenceScore,
		FlaggedWords:     draft.FlaggedWords,
		AutoReviewAction: draft.AutoReviewAction,
		AutoReviewReason: draft.AutoReviewReason,
		SpamReasons:      draft.SpamReasons,
		SpamConfidence:   draft.SpamConfidence,
	}
	if err := s.tx.WithContext(ctx).Create(&c).Error; err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s txStore) BulkHide(ctx context.Context, ids []string) error {
	return s.tx.WithContext(ctx).
		Model(&models.CommentModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"status": models.CommentHidden, "is_spam": true}).Error
}

// Create runs a submission through moderation and persists the decided
// comment atomically.
func (s *Service) Create(ctx context.Context, userID string, dto *CreateCommentDTO) (*moderation.Outcome, error) {
	var post models.PostModel
	if err := s.db.WithContext(ctx).Select("id").First(&post, "id = ?", dto.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	store := txStore{tx: tx}
	outcome, err := s.engine.Moderate(ctx, moderation.Submission{
		Text:   dto.Text,
		UserID: userID,
		PostID: dto.PostID,
	}, store, store)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Fire the abuse-rate hook only after the commit, so the check sees the
	// comment that triggered it.
	if outcome.Abuse.IsAbusive == 1 && s.engine.OnAbusive != nil {
		s.engine.OnAbusive(userID)
	}
	return outcome, nil
}

// ListForPost returns the non-deleted comments on a post, oldest first.
func (s *Service) ListForPost(ctx context.Context, postID string) ([]models.CommentModel, error) {
	var post models.PostModel
	if err := s.db.WithContext(ctx).Select("id").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}

	var comments []models.CommentModel
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND status <> ?", postID, models.CommentDeleted).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// GetByID returns one comment, or errCommentNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.CommentModel, error) {
	var c models.CommentModel
	if err := s.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteOwn soft-deletes a comment on behalf of its author. Deleted comments
// drop out of listings and of the spam tracker's history.
func (s *Service) DeleteOwn(ctx context.Context, userID, commentID string) error {
	c, err := s.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return errNotCommentOwner
	}
	return s.db.WithContext(ctx).
		Model(&models.CommentModel{}).
		Where("id = ?", commentID).
		Update("status", models.CommentDeleted).Error
}
