package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	qport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/queue/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/realtime"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/task"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repoAdapter "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/adapter"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/controller"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/middleware"
)

// Deps carries the process-wide collaborators the messaging routes need.
// Cache and Queue may be nil; the feature degrades to store-only behavior.
type Deps struct {
	Pool      *pgxpool.Pool
	Cache     cport.Cache
	Queue     qport.Client
	Registry  *realtime.Registry
	Presence  *realtime.PresenceTracker
	JWTSecret string
	Logger    *zap.Logger
}

// RegisterRoutes mounts the messaging endpoints under the given group,
// wiring per-endpoint controllers the way the storefront consumes them.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	repo := repoAdapter.NewPgMessageRepository(deps.Pool)
	deliverer := realtime.NewMessageDeliverer(deps.Registry)

	var offline usecase.OfflineNotifier
	if deps.Queue != nil {
		offline = &task.OfflineNotifier{Q: deps.Queue}
	}

	sendUC := usecase.NewSendMessageUseCase(repo, deliverer, offline, deps.Logger)
	conversationUC := usecase.NewGetConversationUseCase(repo)
	unreadUC := usecase.NewListUnreadUseCase(repo, deps.Cache, deps.Logger)
	markOneUC := usecase.NewMarkReadUseCase(repo, deps.Cache)
	markAllUC := usecase.NewMarkConversationReadUseCase(repo, deps.Cache, deps.Logger)
	adminsUC := usecase.NewListAdminsUseCase(repo)
	usersUC := usecase.NewSearchUsersUseCase(repo)

	sendCtl := controller.NewSendMessageController(sendUC)
	conversationCtl := controller.NewGetConversationController(conversationUC)
	unreadCtl := controller.NewListUnreadController(unreadUC)
	markCtl := controller.NewMarkReadController(markOneUC, markAllUC, deps.Queue)
	directoryCtl := controller.NewDirectoryController(adminsUC, usersUC)
	socketCtl := controller.NewMessageSocketController(deps.Registry, deps.Presence, sendUC, deps.JWTSecret, deps.Logger)

	// the websocket authenticates inside its join frame, not via header
	g.GET("/ws", socketCtl.Handle())

	authed := g.Group("", middleware.RequireAuth(deps.JWTSecret))
	authed.POST("/", sendCtl.Handle())
	authed.GET("/conversation/:counterpartId", conversationCtl.Handle())
	authed.PATCH("/conversation/:counterpartId/lu", markCtl.HandleConversation())
	authed.GET("/non-lus", unreadCtl.Handle())
	authed.PATCH("/:id/lu", markCtl.HandleOne())
	authed.GET("/admins", directoryCtl.HandleAdmins())
	authed.GET("/utilisateurs", middleware.RequireRole(domain.RoleAdmin), directoryCtl.HandleUsers())
}
