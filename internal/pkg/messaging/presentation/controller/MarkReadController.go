package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	qport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/queue/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/task"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/middleware"
)

// reconcileDelay bounds how stale the unread index can stay after a bulk
// mark with partial failures.
const reconcileDelay = 30 * time.Second

// MarkReadController handles PATCH /:id/lu (one message) and
// PATCH /conversation/:counterpartId/lu (every unread message of a pair,
// used when a conversation view opens).
type MarkReadController struct {
	markOne *usecase.MarkReadUseCase
	markAll *usecase.MarkConversationReadUseCase
	queue   qport.Client // optional; schedules the correctness sweep
}

func NewMarkReadController(markOne *usecase.MarkReadUseCase, markAll *usecase.MarkConversationReadUseCase, queue qport.Client) *MarkReadController {
	return &MarkReadController{markOne: markOne, markAll: markAll, queue: queue}
}

func (ctl *MarkReadController) HandleOne() gin.HandlerFunc {
	return func(c *gin.Context) {
		readerID, _ := middleware.ParticipantFrom(c)

		messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || messageID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant de message invalide"})
			return
		}

		if err := ctl.markOne.Execute(c.Request.Context(), messageID, readerID); err != nil {
			respondUseCaseError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (ctl *MarkReadController) HandleConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		readerID, _ := middleware.ParticipantFrom(c)

		counterpartID, err := strconv.ParseInt(c.Param("counterpartId"), 10, 64)
		if err != nil || counterpartID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant de contact invalide"})
			return
		}

		marked, err := ctl.markAll.Execute(c.Request.Context(), readerID, counterpartID)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		// best-effort sweep; a partial bulk mark self-heals within the delay
		if ctl.queue != nil {
			_ = task.EnqueueUnreadRefresh(c.Request.Context(), ctl.queue, readerID, reconcileDelay)
		}
		c.JSON(http.StatusOK, gin.H{"marques": marked})
	}
}
