package handlers

import (
	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/middleware"
	"ruedo-cms/models"
	"ruedo-cms/services"
)

type NewsHandler struct {
	newsService  services.NewsService
	blockService services.ContentBlockService
	Helper       *helper.HTTPHelper
	pageSize     int
}

func NewNewsHandler(newsService services.NewsService, blockService services.ContentBlockService, h *helper.HTTPHelper, pageSize int) *NewsHandler {
	return &NewsHandler{newsService: newsService, blockService: blockService, Helper: h, pageSize: pageSize}
}

// publicationFilter reads the list parameters shared by news and interviews.
func publicationFilter(c *gin.Context) (models.PublicationFilter, error) {
	featured, err := helper.ParseBoolQuery(c, "destacada")
	if err != nil {
		return models.PublicationFilter{}, err
	}
	return models.PublicationFilter{
		Category: c.Query("categoria"),
		Featured: featured,
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}, nil
}

func (h *NewsHandler) List(c *gin.Context) {
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

	articles, total, err := h.newsService.List(middleware.CurrentUser(c), filter, page)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendList(c, articles, page, total)
}

func (h *NewsHandler) Get(c *gin.Context) {
	article, err := h.newsService.Get(middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", article)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	article, err := h.newsService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Noticia creada", article)
}

func (h *NewsHandler) Update(c *gin.Context) {
	var req models.NewsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	article, err := h.newsService.Update(middleware.CurrentUser(c), c.Param("slug"), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Noticia actualizada", article)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.newsService.Delete(middleware.CurrentUser(c), c.Param("slug")); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

// Blocks

func (h *NewsHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.blockService.List(middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", blocks)
}

func (h *NewsHandler) GetBlock(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	block, err := h.blockService.Get(middleware.CurrentUser(c), c.Param("slug"), id)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "", block)
}

func (h *NewsHandler) CreateBlock(c *gin.Context) {
	var req models.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	block, err := h.blockService.Create(middleware.CurrentUser(c), c.Param("slug"), req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendCreated(c, "Bloque creado", block)
}

func (h *NewsHandler) UpdateBlock(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	var req models.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	block, err := h.blockService.Update(middleware.CurrentUser(c), c.Param("slug"), id, req)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Bloque actualizado", block)
}

func (h *NewsHandler) DeleteBlock(c *gin.Context) {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	if err := h.blockService.Delete(middleware.CurrentUser(c), c.Param("slug"), id); err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
