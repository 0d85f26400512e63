package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/volcano/internal/middleware"
	"github.com/xxxsen/volcano/internal/pkg/response"
	"github.com/xxxsen/volcano/internal/service"
)

type UserHandler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
}

func NewUserHandler(auth *service.AuthService, profiles *service.ProfileService) *UserHandler {
	return &UserHandler{auth: auth, profiles: profiles}
}

func (h *UserHandler) Register(c *gin.Context) {
	body := decodeBody(c)
	if err := h.auth.Register(c.Request.Context(), stringField(body, "email"), stringField(body, "password")); err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, "User created")
}

func (h *UserHandler) Login(c *gin.Context) {
	body := decodeBody(c)
	res, err := h.auth.Login(c.Request.Context(), stringField(body, "email"), stringField(body, "password"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("email"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	profile, err := h.profiles.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("email"), decodeBody(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}
