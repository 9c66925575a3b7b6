package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront-bff/internal/domain"
)

// statusFor maps service errors onto HTTP statuses. Upstream client errors the
// caller can act on keep their status; everything else is a 500.
func statusFor(err error) int {
	var (
		exhausted  *domain.CartUpdateExhaustedError
		authErr    *domain.AuthError
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		apiErr     *domain.APIError
	)
	switch {
	case errors.As(err, &exhausted), errors.As(err, &authErr):
		return http.StatusInternalServerError
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
			return apiErr.Status
		}
	}
	return http.StatusInternalServerError
}

func errorBody(err error) gin.H {
	body := gin.H{"error": err.Error()}
	var validation *domain.ValidationError
	if errors.As(err, &validation) && validation.Details != nil {
		body["methods"] = validation.Details
	}
	return body
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorBody(err))
}

// respondAdminError keeps the ok flag the admin product endpoints answer with.
func respondAdminError(c *gin.Context, err error) {
	body := errorBody(err)
	body["ok"] = false
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
