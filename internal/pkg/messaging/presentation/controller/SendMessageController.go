package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/middleware"
)

// SendMessageController handles POST /, the send endpoint the storefront
// compose box calls. The response body is the persisted message; the sending
// tab appends it optimistically while other tabs get the socket echo.
type SendMessageController struct {
	send            *usecase.SendMessageUseCase
	inflightTimeout time.Duration
}

func NewSendMessageController(send *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{send: send, inflightTimeout: 5 * time.Second}
}

type sendMessageRequest struct {
	RecipientID int64  `json:"destinataire_id" binding:"required"`
	Content     string `json:"contenu"`
}

func (ctl *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, _ := middleware.ParticipantFrom(c)

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
		defer cancel()

		msg, err := ctl.send.Execute(ctx, usecase.SendMessageInput{
			SenderID:           senderID,
			RecipientID:        req.RecipientID,
			Content:            req.Content,
			OriginConnectionID: c.GetHeader("X-Connection-Id"),
		})
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// respondUseCaseError maps the messaging error taxonomy onto HTTP statuses.
func respondUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "contenu et destinataire_id sont requis"})
	case errors.Is(err, usecase.ErrSameRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "messagerie limitée aux échanges client-pharmacien"})
	case errors.Is(err, usecase.ErrUnknownParticipant):
		c.JSON(http.StatusNotFound, gin.H{"error": "destinataire introuvable"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service momentanément indisponible, réessayez"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erreur interne"})
	}
}
