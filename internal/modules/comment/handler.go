package comment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/middleware"
	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/moderation"
	"github.com/safespace/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	g := rg.Group("/comments")

	g.POST("", authMW, h.create)
	g.GET("/post/:postId", optionalAuthMW, h.listByPost)
	g.GET("/:id", optionalAuthMW, h.get)
	g.DELETE("/:id", authMW, h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	outcome, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errPostNotFound):
			response.BadRequest(c, "post not found")
		case errors.Is(err, moderation.ErrEmptyText):
			response.UnprocessableEntity(c, "comment text must not be empty")
		case errors.Is(err, moderation.ErrTextTooLong):
			response.UnprocessableEntity(c, "comment text exceeds maximum length")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, outcome)
}

func (h *Handler) listByPost(c *gin.Context) {
	comments, err := h.svc.ListForPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, errPostNotFound) {
			response.NotFoundMsg(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	isModerator := viewerIsModerator(c)
	out := make([]commentResponse, len(comments))
	for i := range comments {
		out[i] = toResponse(&comments[i], isModerator)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	comment, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errCommentNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(comment, viewerIsModerator(c)))
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.DeleteOwn(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errCommentNotFound):
			response.NotFound(c)
		case errors.Is(err, errNotCommentOwner):
			response.ForbiddenMsg(c, "you can only delete your own comments")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.NoContent(c)
}

func viewerIsModerator(c *gin.Context) bool {
	role := middleware.CurrentRole(c)
	return role == models.RoleModerator || role == models.RoleAdmin
}
