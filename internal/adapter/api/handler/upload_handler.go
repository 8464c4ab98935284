package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/usecase"
	"ripple/pkg/errors"
	"ripple/pkg/logger"
	"ripple/pkg/response"
)

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

// UploadImage stores the multipart "file" field for the signed-in vendor or
// charity and returns its public URL.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	user := userFrom(c)
	if user == nil {
		return response.Error(c, errors.Forbidden("Access denied: role required", nil))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > usecase.MaxUploadSize {
		return response.Error(c, errors.BadRequest("File exceeds the 5 MB limit", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.uploadUseCase.UploadImage(c.Request().Context(), user.Type, uid, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		return response.Error(c, err)
	}

	logger.Debug("Stored %s (%d bytes) for %s %s", file.Filename, file.Size, user.Type, uid)
	return response.Created(c, map[string]string{
		"url": url,
	})
}
