package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	Helper           *helper.HTTPHelper
	pageSize         int
}

func NewInterviewHandler(interviewService services.InterviewService, h *helper.HTTPHelper, pageSize int) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService, Helper: h, pageSize: pageSize}
}

func (h *InterviewHandler) List(c *gin.Context) {
	page, err := helper.ParsePage(c, h.pageSize)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	filter, err := publicationFilter(c)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	interviews, total, err := h.interviewService.List(middleware.CurrentUser(c), filter, page)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendList(c, interviews, page, total)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	interview, err := h.interviewService.Get(middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", interview)
}

func (h *InterviewHandler) Create(c *gin.Context) {
	var req models.InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	interview, err := h.interviewService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Entrevista creada", interview)
}

func (h *InterviewHandler) Update(c *gin.Context) {
	var req models.InterviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	interview, err := h.interviewService.Update(middleware.CurrentUser(c), c.Param("slug"), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Entrevista actualizada", interview)
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.interviewService.Delete(middleware.CurrentUser(c), c.Param("slug")); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
