package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fanzone/fanzone-backend/internal/app/service"
	apperrors "github.com/fanzone/fanzone-backend/internal/errors"
)

type MailController struct {
	mailService service.MailService
}

func NewMailController(mailService service.MailService) *MailController {
	return &MailController{mailService: mailService}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Contact handles POST /mail/contact. Delivery is queued, so the
// storefront gets an immediate acknowledgement.
func (ctrl *MailController) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, bindingErrorFields(err))
		return
	}

	ctrl.mailService.ContactMessage(req.Name, req.Email, req.Message)

	c.JSON(http.StatusOK, gin.H{"message": "Mesazhi u dërgua"})
}
