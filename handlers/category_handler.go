package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
	pageSize        int
}

func NewCategoryHandler(categoryService services.CategoryService, h *helper.HTTPHelper, pageSize int) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, Helper: h, pageSize: pageSize}
}

func (h *CategoryHandler) List(c *gin.Context) {
	page, err := helper.ParsePage(c, h.pageSize)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	categories, total, err := h.categoryService.List(middleware.CurrentUser(c), page)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendList(c, categories, page, total)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryService.Get(middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	category, err := h.categoryService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Categoría creada", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req models.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	category, err := h.categoryService.Update(middleware.CurrentUser(c), c.Param("slug"), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Categoría actualizada", category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(middleware.CurrentUser(c), c.Param("slug")); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
