package helper

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"ruedo-cms/logging"
	"ruedo-cms/models"
)

const (
	textError = `error`
	textOk    = `ok`

	msgBadRequest     = "Solicitud inválida."
	msgInternalServer = "Error interno del servidor."
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  interface{}
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper writes every response in the {code, code_type, code_message, data}
// envelope. Code is also the HTTP status.
type HTTPHelper struct {
	Translator ut.Translator
}

func NewHTTPHelper(translator ut.Translator) *HTTPHelper {
	return &HTTPHelper{Translator: translator}
}

// GetStatusCode maps an error returned by a service to its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var (
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
		validation   models.ErrorValidation
		tooMany      models.ErrorTooManyRequests
		fieldErrs    validator.ValidationErrors
	)
	switch {
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &fieldErrs), isDecodeError(err):
		return http.StatusBadRequest
	case errors.As(err, &tooMany):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// SendErrorFrom writes err with the status GetStatusCode picks for it.
func (u *HTTPHelper) SendErrorFrom(c *gin.Context, err error) {
	var (
		validation models.ErrorValidation
		fieldErrs  validator.ValidationErrors
	)
	switch {
	case errors.As(err, &fieldErrs):
		u.SendValidationError(c, fieldErrs)
		return
	case errors.As(err, &validation):
		u.SendValidationFields(c, validation.Fields)
		return
	case isDecodeError(err):
		u.SendBadRequest(c, msgBadRequest, u.EmptyJsonMap())
		return
	}

	switch status := u.GetStatusCode(err); status {
	case http.StatusUnauthorized:
		u.SendUnauthorizedError(c, err.Error(), u.EmptyJsonMap())
	case http.StatusForbidden:
		u.SendForbiddenError(c, err.Error(), u.EmptyJsonMap())
	case http.StatusNotFound:
		u.SendNotFoundError(c, err.Error(), u.EmptyJsonMap())
	case http.StatusConflict:
		u.SendError(c, err.Error(), u.EmptyJsonMap(), http.StatusConflict, `conflict`)
	case http.StatusTooManyRequests:
		u.SendError(c, err.Error(), u.EmptyJsonMap(), http.StatusTooManyRequests, `tooManyRequests`)
	default:
		logging.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		u.SendError(c, msgInternalServer, u.EmptyJsonMap(), http.StatusInternalServerError, `internalServerError`)
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &timeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// SetResponse ...
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message interface{}, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) {
	res := u.SetResponse(c, textError, message, data, code, codeType)
	u.SendResponse(res)
}

// SendBadRequest ...
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusBadRequest, `badRequest`)
}

// SendValidationError translates binding errors into per-field messages.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	fields := map[string][]string{}
	for _, err := range validationErrors {
		msg := err.Error()
		if u.Translator != nil {
			msg = err.Translate(u.Translator)
		}
		fields[err.Field()] = append(fields[err.Field()], msg)
	}
	u.SendValidationFields(c, fields)
}

func (u *HTTPHelper) SendValidationFields(c *gin.Context, fields map[string][]string) {
	res := u.SetResponse(c, textError, fields, u.EmptyJsonMap(), http.StatusBadRequest, `validationError`)
	u.SendResponse(res)
}

// SendUnauthorizedError ...
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusUnauthorized, `unAuthorized`)
}

func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusForbidden, `forbidden`)
}

// SendNotFoundError ...
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusNotFound, `notFound`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	res := u.SetResponse(c, textOk, message, data, http.StatusOK, `success`)
	u.SendResponse(res)
}

func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	res := u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`)
	u.SendResponse(res)
}

// SendNoContent answers a successful delete.
func (u *HTTPHelper) SendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if msg, ok := res.Message.(string); ok && len(msg) == 0 {
		res.Message = `success`
	}
	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// GetPagingUrl keeps the request's other query parameters.
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	query := url.Values{}
	for k, v := range r.URL.Query() {
		query[k] = v
	}
	query.Set("page", strconv.Itoa(page))
	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// GeneratePaging builds the pagination block for a list response.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page, totalRecord int) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(totalRecord) / float64(limit)))
	}

	if page > 1 && page <= totalPages {
		prevURL = u.GetPagingUrl(c, page-1)
		firstURL = u.GetPagingUrl(c, 1)
	}
	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1)
		lastURL = u.GetPagingUrl(c, totalPages)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}
}

// SendList writes one page of results with its pagination block.
func (u *HTTPHelper) SendList(c *gin.Context, results interface{}, page models.Page, total int64) {
	u.SendSuccess(c, "", map[string]interface{}{
		"results":    results,
		"pagination": u.GeneratePaging(c, page.Size, page.Number, int(total)),
	})
}
