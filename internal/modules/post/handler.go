package post

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/middleware"
	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/pkg/pagination"
	"github.com/safespace/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	g := rg.Group("/posts")

	g.GET("", h.list)
	g.GET("/:id", optionalAuthMW, h.get)
	g.POST("", authMW, h.create)
	g.DELETE("/:id", authMW, h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errPostEmpty), errors.Is(err, errPostTooLong):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, toResponse(p))
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	posts, pag, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toResponse(&posts[i])
	}
	response.Paged(c, out, pag)
}

func (h *Handler) get(c *gin.Context) {
	p, comments, err := h.svc.GetWithComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errPostNotFound) {
			response.NotFoundMsg(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	role := middleware.CurrentRole(c)
	isModerator := role == models.RoleModerator || role == models.RoleAdmin

	detail := postDetailResponse{
		postResponse: toResponse(p),
		Comments:     make([]postCommentResponse, len(comments)),
	}
	for i := range comments {
		detail.Comments[i] = toCommentResponse(&comments[i], isModerator)
	}
	response.OK(c, detail)
}

func (h *Handler) delete(c *gin.Context) {
	isAdmin := middleware.CurrentRole(c) == models.RoleAdmin
	err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), isAdmin, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errPostNotFound):
			response.NotFoundMsg(c, "post not found")
		case errors.Is(err, errNotPostOwner):
			response.ForbiddenMsg(c, "you can only delete your own posts")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.NoContent(c)
}
