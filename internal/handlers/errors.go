package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronica/backend/pkg/apperrors"
)

// writeError maps the error taxonomy onto HTTP statuses. Everything is
// surfaced in the uniform {success, error} envelope; nothing is swallowed.
func writeError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		decodeErr     *apperrors.ImageDecodeError
		remoteErr     *apperrors.RemoteAPIError
		uploadErr     *apperrors.UploadError
		configErr     *apperrors.ConfigurationError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &decodeErr):
		status = http.StatusBadRequest
	case errors.As(err, &remoteErr):
		status = http.StatusBadRequest
	case errors.As(err, &uploadErr):
		status = http.StatusBadGateway
	case errors.As(err, &configErr):
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
