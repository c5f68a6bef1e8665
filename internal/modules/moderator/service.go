package moderator

import (
	"context"
	"errors"
	"time"

	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/pkg/mail"
	"github.com/safespace/core/internal/pkg/pagination"
	"github.com/safespace/core/internal/pkg/response"
	"github.com/safespace/core/internal/pkg/taskqueue"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	sender *mail.Sender
	tasks  *taskqueue.Service
}

func NewService(db *gorm.DB, sender *mail.Sender, tasks *taskqueue.Service) *Service {
	return &Service{db: db, sender: sender, tasks: tasks}
}

// ListComments returns comments for the review queue, pending ones first
// and newest first within each group. Filters are optional; nil means no
// constraint.
func (s *Service) ListComments(ctx context.Context, q pagination.Query, status *string, abusive, spam *bool) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.CommentModel{}).
		Preload("User").
		Order("status = 'pending_review' DESC, created_at DESC")

	if status != nil && *status != "" {
		tx = tx.Where("status = ?", *status)
	}
	if abusive != nil {
		if *abusive {
			tx = tx.Where("is_abusive = 1")
		} else {
			tx = tx.Where("is_abusive = 0")
		}
	}
	if spam != nil {
		tx = tx.Where("is_spam = ?", *spam)
	}

	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

// Review sets a comment's status on behalf of a moderator and stamps the
// audit fields.
func (s *Service) Review(ctx context.Context, moderatorID, commentID, status, note string) (*models.CommentModel, error) {
	var c models.CommentModel
	if err := s.db.WithContext(ctx).First(&c, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         status,
		"reviewed_by":    moderatorID,
		"reviewed_at":    now,
		"moderator_note": note,
	}
	if err := s.db.WithContext(ctx).Model(&c).Updates(updates).Error; err != nil {
		return nil, err
	}

	c.Status = status
	c.ReviewedBy = &moderatorID
	c.ReviewedAt = &now
	c.ModeratorNote = note
	return &c, nil
}

// SummarizeUser aggregates one user's moderation record.
func (s *Service) SummarizeUser(ctx context.Context, userID string) (*UserSummary, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	summary := UserSummary{
		UserID:      user.ID,
		Username:    user.Username,
		WarnedAt:    user.WarnedAt,
		SuspendedAt: user.SuspendedAt,
	}

	base := s.db.WithContext(ctx).Model(&models.CommentModel{}).
		Where("user_id = ? AND status <> ?", userID, models.CommentDeleted)
	if err := base.Session(&gorm.Session{}).Count(&summary.TotalComments).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_abusive = 1").Count(&summary.AbusiveComments).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_spam = ?", true).Count(&summary.SpamComments).Error; err != nil {
		return nil, err
	}
	if summary.TotalComments > 0 {
		summary.AbuseRate = float64(summary.AbusiveComments) / float64(summary.TotalComments)
	}
	return &summary, nil
}

// Overview computes platform-wide moderation counters, optionally windowed
// to comments created after since.
func (s *Service) Overview(ctx context.Context, since *time.Time) (*OverviewStats, error) {
	base := s.db.WithContext(ctx).Model(&models.CommentModel{})
	if since != nil {
		base = base.Where("created_at >= ?", *since)
	}

	var stats OverviewStats
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_abusive = 1").Count(&stats.AbusiveComments).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_spam = ?", true).Count(&stats.SpamComments).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.CommentPendingReview).Count(&stats.PendingReview).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.CommentHidden).Count(&stats.HiddenComments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// EmailWeeklyReport computes the last seven days of moderation counters and
// mails them to the requesting moderator.
func (s *Service) EmailWeeklyReport(ctx context.Context, moderatorID string) (*OverviewStats, error) {
	var moderator models.UserModel
	if err := s.db.WithContext(ctx).First(&moderator, "id = ?", moderatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	weekEnd := time.Now()
	weekStart := weekEnd.AddDate(0, 0, -7)
	stats, err := s.Overview(ctx, &weekStart)
	if err != nil {
		return nil, err
	}

	if s.sender != nil {
		if err := s.sender.SendWeeklyReport(moderator.Email, mail.WeeklyReportData{
			ModeratorName:   moderator.Username,
			WeekStart:       weekStart.Format("2006-01-02"),
			WeekEnd:         weekEnd.Format("2006-01-02"),
			TotalComments:   stats.TotalComments,
			AbusiveComments: stats.AbusiveComments,
			SpamComments:    stats.SpamComments,
			PendingReview:   stats.PendingReview,
		}); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// ListTasks pages through the recorded asynchronous moderation jobs.
func (s *Service) ListTasks(ctx context.Context, q pagination.Query, taskType *string, status *taskqueue.TaskStatus) ([]*taskqueue.Task, response.Pagination, error) {
	tasks, total, err := s.tasks.List(ctx, q.Page, q.Size, taskType, status)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return tasks, pagination.Meta(q, total), nil
}

// GetTask returns one recorded job.
func (s *Service) GetTask(ctx context.Context, id string) (*taskqueue.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// CancelTask cancels a still-pending job.
func (s *Service) CancelTask(ctx context.Context, id string) error {
	return s.tasks.Cancel(ctx, id)
}

// DeleteTask removes one job record.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.DeleteByID(ctx, id)
}

// PurgeFinishedTasks removes finished job records, optionally only those
// created before the given unix-millisecond timestamp.
func (s *Service) PurgeFinishedTasks(ctx context.Context, beforeMS int64) (int, error) {
	return s.tasks.DeleteFinished(ctx, beforeMS)
}
