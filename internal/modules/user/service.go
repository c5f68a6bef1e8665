package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/safespace/core/internal/config"
	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/pkg/jwt"
	"github.com/safespace/core/internal/pkg/mail"
	"github.com/safespace/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tokenTTL is the access token lifetime.
const tokenTTL = time.Hour

const abuseRateTask = "abuse_rate_check"

type Service struct {
	db     *gorm.DB
	sender *mail.Sender
	tasks  *taskqueue.Service
	mod    config.ModerationConfig
	mailCf config.MailConfig
	logger *zap.Logger
}

func NewService(db *gorm.DB, sender *mail.Sender, tasks *taskqueue.Service, cfg *config.AppConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		sender: sender,
		tasks:  tasks,
		mod:    cfg.Moderation,
		mailCf: cfg.Mail,
		logger: logger,
	}
}

// Register creates a new account and fires the welcome email in the
// background. Email failures never fail the registration.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserModel, error) {
	username := strings.TrimSpace(dto.Username)
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errUsernameTaken
	}
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.UserModel{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}

	if s.sender != nil {
		go func() {
			defer recoverToLog(s.logger, "welcome email")
			if err := s.sender.SendWelcome(u.Email, mail.WelcomeData{Username: u.Username}); err != nil {
				s.logger.Warn("welcome email failed", zap.String("user_id", u.ID), zap.Error(err))
			}
		}()
	}
	return &u, nil
}

// Login verifies credentials and issues a JWT. Suspended and deactivated
// accounts cannot sign in.
func (s *Service) Login(ctx context.Context, dto *LoginDTO, ip string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(dto.Username)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)) != nil {
		return "", nil, errInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, errAccountDisabled
	}
	if u.SuspendedAt != nil {
		return "", nil, errAccountSuspended
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&u).
		Updates(map[string]interface{}{"last_login_time": now, "last_login_ip": ip}).Error; err != nil {
		return "", nil, err
	}
	u.LastLoginTime = &now
	u.LastLoginIP = ip

	token, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &u, nil
}

// GetByID returns one account, or errUserNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when no admin
// exists yet.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.UserModel{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	s.logger.Warn("default admin account created, change the password",
		zap.String("username", admin.Username))
	return nil
}

// CheckAbuseRate recomputes a user's flagged-comment share and applies the
// warning or suspension policy. Called asynchronously after each abusive
// comment; every failure is logged and swallowed so moderation of the
// triggering comment is never affected.
func (s *Service) CheckAbuseRate(userID string) {
	defer recoverToLog(s.logger, "abuse rate check")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var task *taskqueue.Task
	if s.tasks != nil {
		t, err := s.tasks.Enqueue(ctx, abuseRateTask,
			map[string]string{"user_id": userID}, userID, "")
		if err != nil {
			s.logger.Warn("enqueue abuse rate task failed", zap.String("user_id", userID), zap.Error(err))
		} else {
			task = t
			s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskRunning, nil, "")
		}
	}

	result, err := s.runAbuseRateCheck(ctx, userID)
	if task != nil {
		if err != nil {
			s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, err.Error())
		} else {
			s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskCompleted, result, "")
		}
	}
	if err != nil {
		s.logger.Warn("abuse rate check failed", zap.String("user_id", userID), zap.Error(err))
	}
}

type abuseRateResult struct {
	Total     int64   `json:"total"`
	Abusive   int64   `json:"abusive"`
	Rate      float64 `json:"rate"`
	Action    string  `json:"action"`
	Threshold float64 `json:"threshold,omitempty"`
}

func (s *Service) runAbuseRateCheck(ctx context.Context, userID string) (*abuseRateResult, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SuspendedAt != nil {
		return &abuseRateResult{Action: "already_suspended"}, nil
	}

	var total, abusive int64
	base := s.db.WithContext(ctx).Model(&models.CommentModel{}).
		Where("user_id = ? AND status <> ?", userID, models.CommentDeleted)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_abusive = 1").Count(&abusive).Error; err != nil {
		return nil, err
	}

	result := &abuseRateResult{Total: total, Abusive: abusive, Action: "none"}
	if total < int64(s.mod.AbuseRateMinComments) || total == 0 {
		return result, nil
	}
	result.Rate = float64(abusive) / float64(total)

	switch {
	case result.Rate >= s.mod.AbuseSuspendRate:
		result.Action = "suspended"
		result.Threshold = s.mod.AbuseSuspendRate
		return result, s.suspend(ctx, user, result.Rate)
	case result.Rate >= s.mod.AbuseWarnRate && user.WarnedAt == nil:
		result.Action = "warned"
		result.Threshold = s.mod.AbuseWarnRate
		return result, s.warn(ctx, user, result.Rate)
	}
	return result, nil
}

func (s *Service) warn(ctx context.Context, user *models.UserModel, rate float64) error {
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(user).Update("warned_at", now).Error; err != nil {
		return err
	}
	s.logger.Info("user warned for abuse rate",
		zap.String("user_id", user.ID), zap.Float64("rate", rate))

	if s.sender != nil {
		if err := s.sender.SendWarning(user.Email, mail.WarningData{
			Username:       user.Username,
			AbuseRatePct:   rate * 100,
			SuspendRatePct: s.mod.AbuseSuspendRate * 100,
		}); err != nil {
			s.logger.Warn("warning email failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) suspend(ctx context.Context, user *models.UserModel, rate float64) error {
	now := time.Now()
	reason := fmt.Sprintf("Automatic suspension: %.0f%% of your recent comments were flagged as abusive", rate*100)
	err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"suspended_at":      now,
		"suspension_reason": reason,
	}).Error
	if err != nil {
		return err
	}
	s.logger.Info("user suspended for abuse rate",
		zap.String("user_id", user.ID), zap.Float64("rate", rate))

	if s.sender != nil {
		if err := s.sender.SendSuspension(user.Email, mail.SuspensionData{
			Username:    user.Username,
			Reason:      reason,
			AppealEmail: s.mailCf.AppealEmail,
		}); err != nil {
			s.logger.Warn("suspension email failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func recoverToLog(logger *zap.Logger, what string) {
	if r := recover(); r != nil {
		logger.Error("panic recovered", zap.String("in", what), zap.Any("panic", r))
	}
}
