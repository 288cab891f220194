package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
)

// APIError is rendered as {"error": Message} with status Code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// Status lets a handler pick a success code other than 200.
type Status struct {
	Code int
	Body any
}

func Created(body any) Status { return Status{Code: http.StatusCreated, Body: body} }

func BadRequest(msg string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: msg}
}

// StoreError maps store sentinels onto HTTP errors; anything else is a 500
// carrying fallback as its message.
func StoreError(err error, fallback string) *APIError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return &APIError{Code: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, db.ErrConflict):
		return &APIError{Code: http.StatusConflict, Message: "already exists"}
	default:
		return &APIError{Code: http.StatusInternalServerError, Message: fallback}
	}
}

// ResolveEndpoint adapts a HandlerFunc to gin. A nil result with no error is
// 204 No Content.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.AbortWithStatusJSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		if ctx.Writer.Written() {
			return
		}

		switch r := result.(type) {
		case nil:
			ctx.Status(http.StatusNoContent)
		case Status:
			if r.Body == nil {
				ctx.Status(r.Code)
				return
			}
			ctx.JSON(r.Code, r.Body)
		default:
			ctx.JSON(http.StatusOK, result)
		}
	}
}
