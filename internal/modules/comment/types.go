package comment

import (
	"errors"
	"time"

	"github.com/safespace/core/internal/models"
)

// historyWindow bounds how much per-post history the spam tracker loads.
const historyWindow = 200

var (
	errPostNotFound    = errors.New("post not found")
	errCommentNotFound = errors.New("comment not found")
	errNotCommentOwner = errors.New("comment belongs to another user")
)

type CreateCommentDTO struct {
	PostID string `json:"post_id" binding:"required"`
	Text   string `json:"text"    binding:"required"`
}

// hiddenPlaceholder replaces the text of hidden comments for regular viewers.
const hiddenPlaceholder = "[Hidden due to abusive content]"

type commentResponse struct {
	ID       string    `json:"id"`
	PostID   string    `json:"post_id"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Text     string    `json:"text"`
	Status   string    `json:"status"`
	Created  time.Time `json:"created"`
}

// toResponse maps a comment for a viewer. Hidden and pending comments keep
// their text only for moderators.
func toResponse(c *models.CommentModel, isModerator bool) commentResponse {
	r := commentResponse{
		ID:      c.ID,
		PostID:  c.PostID,
		UserID:  c.UserID,
		Text:    c.Text,
		Status:  c.Status,
		Created: c.CreatedAt,
	}
	if c.User != nil {
		r.Username = c.User.Username
	}
	if !isModerator && c.Status != models.CommentApproved {
		r.Text = hiddenPlaceholder
		r.UserID = ""
		r.Username = ""
	}
	return r
}
