package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// respondError is the single request-boundary error mapping. Authentication
// and authorization denials stay generic so responses never reveal whether
// a resource exists; the internal reason is logged instead.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	kind, ok := apperr.KindOf(err)
	if !ok {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case apperr.KindValidation, apperr.KindState:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindAuthentication:
		status = http.StatusUnauthorized
	case apperr.KindAuthorization:
		status = http.StatusForbidden
		if errors.As(err, &e) && e.Reason != "" {
			log.Printf("denied %s %s: %s", c.Request.Method, c.Request.URL.Path, e.Reason)
		}
	}

	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

// uploadFromHeader adapts a multipart file into the engine's upload shape.
// The returned closer must be called after the service consumed the reader.
func uploadFromHeader(fh *multipart.FileHeader) (*application.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, apperr.Validation("Invalid image")
	}
	up := &application.Upload{
		Reader:      f,
		Size:        fh.Size,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
	return up, func() { _ = f.Close() }, nil
}
