package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

type EventHandler struct {
	eventService services.EventService
	Helper       *helper.HTTPHelper
	pageSize     int
}

func NewEventHandler(eventService services.EventService, h *helper.HTTPHelper, pageSize int) *EventHandler {
	return &EventHandler{eventService: eventService, Helper: h, pageSize: pageSize}
}

func eventFilter(c *gin.Context) (models.EventFilter, error) {
	filter := models.EventFilter{
		CategorySlug: c.Query("categoria"),
		City:         c.Query("ciudad"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
	}

	var err error
	if filter.Featured, err = helper.ParseBoolQuery(c, "destacado"); err != nil {
		return filter, err
	}
	if filter.Open, err = helper.ParseBoolQuery(c, "abierto"); err != nil {
		return filter, err
	}
	if filter.Free, err = helper.ParseBoolQuery(c, "gratuito"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *EventHandler) List(c *gin.Context) {
	page, err := helper.ParsePage(c, h.pageSize)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	filter, err := eventFilter(c)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	events, total, err := h.eventService.List(middleware.CurrentUser(c), filter, page)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendList(c, events, page, total)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	event, err := h.eventService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	event, err := h.eventService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Evento creado", event)
}

// Update serves both PUT and PATCH; absent fields keep their value.
func (h *EventHandler) Update(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	event, err := h.eventService.Update(middleware.CurrentUser(c), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Evento actualizado", event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	if err := h.eventService.Delete(middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
