package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"portfolio/api/metrics"
	"portfolio/api/models"
)

type ContactHandlers struct {
	// Repo is optional; without it messages are relayed but not logged.
	Repo        ContactRepository
	Mailer      ContactMailer
	SendTimeout time.Duration
}

func NewContactHandlers(repo ContactRepository, mailer ContactMailer, sendTimeout time.Duration) *ContactHandlers {
	return &ContactHandlers{Repo: repo, Mailer: mailer, SendTimeout: sendTimeout}
}

func (h *ContactHandlers) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": firstValidationMessage(err)})
		return
	}

	msg := &models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
	}

	ctx := c.Request.Context()
	persisted := false
	if h.Repo != nil {
		if err := h.Repo.Create(ctx, msg); err != nil {
			log.Error().Err(err).Msg("failed to persist contact message")
		} else {
			persisted = true
		}
	}

	sendCtx := ctx
	if h.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, h.SendTimeout)
		defer cancel()
	}
	if err := h.Mailer.SendContact(sendCtx, *msg); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Int64("message_id", msg.ID).Msg("failed to relay contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to send message"})
		return
	}

	if persisted {
		if err := h.Repo.MarkDelivered(ctx, msg.ID); err != nil {
			log.Warn().Err(err).Int64("message_id", msg.ID).Msg("failed to mark contact message delivered")
		}
	}
	metrics.ContactMessagesTotal.WithLabelValues("sent").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// firstValidationMessage turns the first failed binding rule into a
// user-facing sentence.
func firstValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("%s must contain at least %s character(s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must contain at most %s character(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Message":
		return "message"
	}
	return structField
}
