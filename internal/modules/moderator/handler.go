package moderator

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/middleware"
	"github.com/safespace/core/internal/models"
	"github.com/safespace/core/internal/pkg/pagination"
	"github.com/safespace/core/internal/pkg/response"
	"github.com/safespace/core/internal/pkg/taskqueue"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the moderation surface. Every route requires a
// moderator or admin account.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/moderation", authMW, middleware.RequireModerator())

	g.GET("/comments", h.listComments)
	g.GET("/stats", h.overview)
	g.GET("/users/:userId/summary", h.userSummary)
	g.POST("/reports/weekly", h.weeklyReport)
	g.PATCH("/comments/:id/approve", h.approve)
	g.PATCH("/comments/:id/hide", h.hide)
	g.DELETE("/comments/:id", h.delete)

	tasks := g.Group("/tasks")
	tasks.GET("", h.listTasks)
	tasks.GET("/:taskId", h.getTask)
	tasks.POST("/:taskId/cancel", h.cancelTask)
	tasks.DELETE("/:taskId", h.deleteTask)
	tasks.DELETE("", h.purgeTasks)
}

func (h *Handler) listComments(c *gin.Context) {
	q := pagination.FromContext(c)

	var status *string
	if v, ok := c.GetQuery("status"); ok {
		status = &v
	}
	abusive := boolQuery(c, "abusive")
	spam := boolQuery(c, "spam")

	comments, pag, err := h.svc.ListComments(c.Request.Context(), q, status, abusive, spam)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := make([]reviewedCommentResponse, len(comments))
	for i := range comments {
		out[i] = toResponse(&comments[i])
	}
	response.Paged(c, out, pag)
}

func (h *Handler) overview(c *gin.Context) {
	stats, err := h.svc.Overview(c.Request.Context(), nil)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) userSummary(c *gin.Context) {
	summary, err := h.svc.SummarizeUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, "user not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, summary)
}

func (h *Handler) weeklyReport(c *gin.Context) {
	stats, err := h.svc.EmailWeeklyReport(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) approve(c *gin.Context) {
	h.review(c, models.CommentApproved)
}

func (h *Handler) hide(c *gin.Context) {
	h.review(c, models.CommentHidden)
}

func (h *Handler) delete(c *gin.Context) {
	h.review(c, models.CommentDeleted)
}

func (h *Handler) review(c *gin.Context, status string) {
	var dto ReviewDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	comment, err := h.svc.Review(c.Request.Context(),
		middleware.CurrentUserID(c), c.Param("id"), status, dto.Note)
	if err != nil {
		if errors.Is(err, errCommentNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(comment))
}

func (h *Handler) listTasks(c *gin.Context) {
	q := pagination.FromContext(c)

	var taskType *string
	if v, ok := c.GetQuery("type"); ok && v != "" {
		taskType = &v
	}
	var status *taskqueue.TaskStatus
	if v, ok := c.GetQuery("status"); ok && v != "" {
		s := taskqueue.TaskStatus(v)
		status = &s
	}

	tasks, pag, err := h.svc.ListTasks(c.Request.Context(), q, taskType, status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, tasks, pag)
}

func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		if errors.Is(err, taskqueue.ErrTaskNotFound) {
			response.NotFoundMsg(c, "task not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, task)
}

func (h *Handler) cancelTask(c *gin.Context) {
	err := h.svc.CancelTask(c.Request.Context(), c.Param("taskId"))
	switch {
	case errors.Is(err, taskqueue.ErrTaskNotFound):
		response.NotFoundMsg(c, "task not found")
	case errors.Is(err, taskqueue.ErrTaskNotPending):
		response.Conflict(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.NoContent(c)
	}
}

func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), c.Param("taskId")); err != nil {
		if errors.Is(err, taskqueue.ErrTaskNotFound) {
			response.NotFoundMsg(c, "task not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) purgeTasks(c *gin.Context) {
	var beforeMS int64
	if v, ok := c.GetQuery("before"); ok && v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "before must be a unix millisecond timestamp")
			return
		}
		beforeMS = ms
	}

	removed, err := h.svc.PurgeFinishedTasks(c.Request.Context(), beforeMS)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"removed": removed})
}

func boolQuery(c *gin.Context, name string) *bool {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
