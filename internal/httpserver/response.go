package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cart-sessions/internal/domain"
)

type dataEnvelope struct {
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dataEnvelope{
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError maps domain failure kinds to transport statuses. Expired is
// deliberately 410, not 404: the cart existed and is now gone, so the client
// should start a new session instead of retrying the same id.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrExpired):
		status = http.StatusGone
		code = "CART_EXPIRED"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		code = "CONFLICT"
	}
	c.JSON(status, errorEnvelope{Error: errorBody{
		Code:       code,
		Message:    err.Error(),
		StatusCode: status,
	}})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:       "INVALID_REQUEST",
		Message:    err.Error(),
		StatusCode: http.StatusBadRequest,
	}})
}
