package post

import (
	"context"
	"errors"
	"strings"

	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/pkg/pagination"
	"github.com/safespace/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db            *gorm.DB
	maxPostLength int
}

func NewService(db *gorm.DB, maxPostLength int) *Service {
	return &Service{db: db, maxPostLength: maxPostLength}
}

// Create stores a new post for the author.
func (s *Service) Create(ctx context.Context, authorID string, dto *CreatePostDTO) (*models.PostModel, error) {
	content := strings.TrimSpace(dto.Content)
	if content == "" {
		return nil, errPostEmpty
	}
	if s.maxPostLength > 0 && len([]rune(content)) > s.maxPostLength {
		return nil, errPostTooLong
	}

	p := models.PostModel{AuthorID: authorID, Content: content}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns posts newest first.
func (s *Service) List(ctx context.Context, q pagination.Query) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.PostModel{}).
		Preload("Author").
		Order("created_at DESC")

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetWithComments loads a post and its non-deleted comments, oldest first.
func (s *Service) GetWithComments(ctx context.Context, id string) (*models.PostModel, []models.CommentModel, error) {
	var p models.PostModel
	if err := s.db.WithContext(ctx).Preload("Author").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errPostNotFound
		}
		return nil, nil, err
	}

	var comments []models.CommentModel
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND status <> ?", id, models.CommentDeleted).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, nil, err
	}
	return &p, comments, nil
}

// Delete removes a post and its comments. Only the author or an admin may
// delete a post.
func (s *Service) Delete(ctx context.Context, requesterID string, isAdmin bool, postID string) error {
	var p models.PostModel
	if err := s.db.WithContext(ctx).First(&p, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errPostNotFound
		}
		return err
	}
	if !isAdmin && p.AuthorID != requesterID {
		return errNotPostOwner
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Where("post_id = ?", postID).Delete(&models.CommentModel{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
