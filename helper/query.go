package helper

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ruedo-cms/models"
)

// ParsePage reads ?page=N. A missing page is the first one.
func ParsePage(c *gin.Context, size int) (models.Page, error) {
	page := models.Page{Number: 1, Size: size}
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return page, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return page, models.NewValidationError("page", "Página inválida.")
	}
	page.Number = n
	return page, nil
}

// ParseBoolQuery returns nil when the parameter is absent.
func ParseBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return nil, models.NewValidationError(key, "Introduzca un valor booleano válido.")
	}
	return &v, nil
}

// ParseIDParam reads a positive integer path parameter. Anything else is
// reported as not found, the same as a missing row.
func ParseIDParam(c *gin.Context, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil || id == 0 {
		return 0, models.ErrorNotFound{Message: models.MsgNotFound}
	}
	return uint(id), nil
}
