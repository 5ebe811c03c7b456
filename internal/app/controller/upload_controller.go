package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fanzone/fanzone-backend/internal/errors"
	"github.com/fanzone/fanzone-backend/internal/storage"
	"github.com/fanzone/fanzone-backend/pkg/logger"
)

type UploadController struct {
	images *storage.ImageStore
}

func NewUploadController(images *storage.ImageStore) *UploadController {
	return &UploadController{images: images}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// Presign handles POST /uploads/presign (admin). The admin panel PUTs the
// image straight to S3 with the returned URL.
func (ctrl *UploadController) Presign(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, bindingErrorFields(err))
		return
	}

	upload, err := ctrl.images.PresignProductImage(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Ky lloj skedari nuk pranohet")
			return
		}
		logger.Error("Failed to presign product image upload", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Ngarkimi dështoi, provoni përsëri")
		return
	}

	c.JSON(http.StatusOK, upload)
}
