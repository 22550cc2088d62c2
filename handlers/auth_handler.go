package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, userService services.UserService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, Helper: h}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	profile, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Registro exitoso", profile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Inicio de sesión exitoso", response)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	pair, err := h.authService.Refresh(req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Token renovado", pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	if err := h.authService.Logout(req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Sesión cerrada", h.Helper.EmptyJsonMap())
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, err := h.userService.Get(user, user.ID)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Perfil cargado", profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	profile, err := h.userService.Update(user, user.ID, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Perfil actualizado", profile)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	if err := h.authService.ChangePassword(middleware.CurrentUser(c), req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Contraseña actualizada correctamente.", h.Helper.EmptyJsonMap())
}
