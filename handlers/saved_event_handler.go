package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

// SavedEventHandler serves the caller's own saved events.
type SavedEventHandler struct {
	savedService services.SavedEventService
	Helper       *helper.HTTPHelper
	pageSize     int
}

func NewSavedEventHandler(savedService services.SavedEventService, h *helper.HTTPHelper, pageSize int) *SavedEventHandler {
	return &SavedEventHandler{savedService: savedService, Helper: h, pageSize: pageSize}
}

func (h *SavedEventHandler) List(c *gin.Context) {
	page, err := helper.ParsePage(c, h.pageSize)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	saved, total, err := h.savedService.List(middleware.CurrentUser(c), page)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendList(c, saved, page, total)
}

func (h *SavedEventHandler) Get(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	saved, err := h.savedService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", saved)
}

func (h *SavedEventHandler) Create(c *gin.Context) {
	var req models.SavedEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	saved, err := h.savedService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Evento guardado", saved)
}

func (h *SavedEventHandler) Update(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	var req models.SavedEventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	saved, err := h.savedService.Update(middleware.CurrentUser(c), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Evento guardado actualizado", saved)
}

func (h *SavedEventHandler) Delete(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	if err := h.savedService.Delete(middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
