package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

// UserHandler serves the admin user management routes.
type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
	pageSize    int
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper, pageSize int) *UserHandler {
	return &UserHandler{userService: userService, Helper: h, pageSize: pageSize}
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := helper.ParsePage(c, h.pageSize)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	users, total, err := h.userService.List(middleware.CurrentUser(c), page)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendList(c, users, page, total)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	profile, err := h.userService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", profile)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	profile, err := h.userService.Update(middleware.CurrentUser(c), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Usuario actualizado", profile)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	if err := h.userService.Delete(middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
