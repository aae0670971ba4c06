package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/middleware"
)

// GetConversationController handles GET /conversation/:counterpartId.
type GetConversationController struct {
	conversation *usecase.GetConversationUseCase
}

func NewGetConversationController(conversation *usecase.GetConversationUseCase) *GetConversationController {
	return &GetConversationController{conversation: conversation}
}

func (ctl *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID, _ := middleware.ParticipantFrom(c)

		counterpartID, err := strconv.ParseInt(c.Param("counterpartId"), 10, 64)
		if err != nil || counterpartID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant de contact invalide"})
			return
		}

		msgs, err := ctl.conversation.Execute(c.Request.Context(), participantID, counterpartID)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}
