// Package handler adapts the ledger application services to HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/logger"
	"github.com/stokledger/backend/internal/interfaces/http/dto"
	"github.com/stokledger/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a paginated list with its meta block
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.Set(middleware.ErrorCodeKey, code)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindingError reports a request that failed to bind or validate
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	message, details := middleware.DescribeBindingError(err)
	c.Set(middleware.ErrorCodeKey, dto.ErrCodeValidation)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeValidation, message, middleware.GetRequestID(c),
	).WithDetails(details))
}

// HandleError converts an application error to an HTTP response.
// Domain errors keep their code and message; anything else is logged
// and reported as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.Set(middleware.ErrorCodeKey, dto.ErrCodeInsufficientStock)
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInsufficientStock, stockErr.Error(), requestID,
		).WithDetails(map[string]any{
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		}))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.Set(middleware.ErrorCodeKey, code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err), zap.String("route", c.FullPath()))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// ParseID reads a UUID path parameter, answering 400 when it is malformed
func (h *BaseHandler) ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// monthQuery reads year and month query parameters, defaulting to the current month
func (h *BaseHandler) monthQuery(c *gin.Context) (int, int, bool) {
	now := shared.Now()
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		h.BadRequest(c, "year must be an integer")
		return 0, 0, false
	}
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		h.BadRequest(c, "month must be an integer")
		return 0, 0, false
	}
	return year, month, true
}
