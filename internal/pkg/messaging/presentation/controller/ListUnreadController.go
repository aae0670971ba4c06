package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/middleware"
)

// ListUnreadController handles GET /non-lus, the endpoint behind the unread
// badge poll. Answers come from the short-TTL cache when it is warm.
type ListUnreadController struct {
	unread *usecase.ListUnreadUseCase
}

func NewListUnreadController(unread *usecase.ListUnreadUseCase) *ListUnreadController {
	return &ListUnreadController{unread: unread}
}

func (ctl *ListUnreadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID, _ := middleware.ParticipantFrom(c)

		msgs, err := ctl.unread.Execute(c.Request.Context(), participantID)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		// ?compteurs=1 returns the senderId -> count badge index instead of
		// the raw message list
		if c.Query("compteurs") == "1" {
			c.JSON(http.StatusOK, usecase.CountBySender(msgs))
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}
