package v1

import (
	"github.com/gin-gonic/gin"

	httpHandler "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/http"
)

// RegisterRoutes mounts the messaging API under /api/messages, the base path
// the storefront frontend is built against.
func RegisterRoutes(r *gin.Engine, deps httpHandler.Deps) {
	messages := r.Group("/api/messages")
	httpHandler.RegisterRoutes(messages, deps)
}
