package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/middleware"
	"github.com/safespace/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/me", authMW, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errUsernameTaken), errors.Is(err, errEmailTaken):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, toResponse(u))
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, u, err := h.svc.Login(c.Request.Context(), &dto, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			response.Unauthorized(c)
		case errors.Is(err, errAccountDisabled), errors.Is(err, errAccountSuspended):
			response.ForbiddenMsg(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, loginResponse{Token: token, User: toResponse(u)})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(u))
}
