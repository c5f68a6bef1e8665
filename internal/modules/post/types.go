package post

import (
	"errors"
	"time"

	"github.com/safespace/core/internal/models"
)

var (
	errPostNotFound = errors.New("post not found")
	errNotPostOwner = errors.New("post belongs to another user")
	errPostEmpty    = errors.New("post content must not be empty")
	errPostTooLong  = errors.New("post content exceeds maximum length")
)

type CreatePostDTO struct {
	Content string `json:"content" binding:"required"`
}

// hiddenPlaceholder replaces the text of hidden comments for regular viewers.
const hiddenPlaceholder = "[Hidden due to abusive content]"

type postResponse struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"author_id"`
	Author   string    `json:"author,omitempty"`
	Content  string    `json:"content"`
	Created  time.Time `json:"created"`
}

type postDetailResponse struct {
	postResponse
	Comments []postCommentResponse `json:"comments"`
}

type postCommentResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id,omitempty"`
	Username string    `json:"username,omitempty"`
	Text     string    `json:"text"`
	Status   string    `json:"status,omitempty"`
	Created  time.Time `json:"created"`
}

func toResponse(p *models.PostModel) postResponse {
	r := postResponse{
		ID:       p.ID,
		AuthorID: p.AuthorID,
		Content:  p.Content,
		Created:  p.CreatedAt,
	}
	if p.Author != nil {
		r.Author = p.Author.Username
	}
	return r
}

// toCommentResponse masks non-approved comments for regular viewers, the same
// shape the post feed has always served.
func toCommentResponse(c *models.CommentModel, isModerator bool) postCommentResponse {
	r := postCommentResponse{
		ID:      c.ID,
		UserID:  c.UserID,
		Text:    c.Text,
		Created: c.CreatedAt,
	}
	if c.User != nil {
		r.Username = c.User.Username
	}
	if isModerator {
		r.Status = c.Status
		return r
	}
	if c.Status != models.CommentApproved {
		r.Text = hiddenPlaceholder
		r.UserID = ""
		r.Username = ""
	}
	return r
}
