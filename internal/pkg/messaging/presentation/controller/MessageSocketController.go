package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/auth"
	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/realtime"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

const (
	joinDeadline       = 10 * time.Second
	defaultReadTimeout = 60 * time.Second
)

// MessageSocketController is the session binder: it upgrades the connection,
// requires an authenticated join frame before anything else, registers the
// connection in the registry and unregisters it when the transport closes.
// No session survives a disconnect; clients re-join on every reconnect.
type MessageSocketController struct {
	registry        *realtime.Registry
	presence        *realtime.PresenceTracker
	send            *usecase.SendMessageUseCase
	jwtSecret       string
	logger          *zap.Logger
	inflightTimeout time.Duration
}

func NewMessageSocketController(registry *realtime.Registry, presence *realtime.PresenceTracker, send *usecase.SendMessageUseCase, jwtSecret string, logger *zap.Logger) *MessageSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageSocketController{
		registry:        registry,
		presence:        presence,
		send:            send,
		jwtSecret:       jwtSecret,
		logger:          logger,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// cross-origin is governed by the bearer token in the join frame
		return true
	},
}

type joinData struct {
	ParticipantID int64  `json:"userId"`
	Role          string `json:"role"`
	Token         string `json:"token"`
}

type socketSendData struct {
	RecipientID int64  `json:"destinataire_id"`
	Content     string `json:"contenu"`
}

// Handle upgrades the connection and processes frames until the client
// disconnects.
func (ctl *MessageSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response
			return
		}

		conn, ok := ctl.bind(ws)
		if !ok {
			return
		}
		defer func() {
			last, tracked := ctl.registry.Unregister(conn)
			if tracked {
				ctl.presence.Left(conn, last)
			}
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}

			var frame realtime.Frame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Event {
			case realtime.EventJoin:
				// already bound; a repeated join is a no-op
			case "message":
				ctl.handleMessage(c.Request.Context(), conn, frame)
			default:
				ctl.replyError(conn, "unsupported_event", "unknown event")
			}
		}
	}
}

// bind reads and verifies the join frame. On failure the socket is closed
// with a policy-violation code and nothing is registered.
func (ctl *MessageSocketController) bind(ws *websocket.Conn) (*realtime.Connection, bool) {
	_ = ws.SetReadDeadline(time.Now().Add(joinDeadline))

	_, data, err := ws.ReadMessage()
	if err != nil {
		_ = ws.Close()
		return nil, false
	}

	var frame realtime.Frame
	var join joinData
	if err := json.Unmarshal(data, &frame); err != nil || frame.Event != realtime.EventJoin {
		ctl.rejectJoin(ws, "join frame required")
		return nil, false
	}
	if err := json.Unmarshal(frame.Data, &join); err != nil {
		ctl.rejectJoin(ws, "invalid join payload")
		return nil, false
	}

	role, err := domain.ParseRole(join.Role)
	if err != nil {
		ctl.rejectJoin(ws, "unknown role")
		return nil, false
	}
	claims, err := auth.VerifyToken(join.Token, ctl.jwtSecret)
	if err != nil || claims.ParticipantID != join.ParticipantID || claims.Role != role {
		ctl.rejectJoin(ws, "unauthorized")
		return nil, false
	}

	conn := realtime.NewConnection(claims.ParticipantID, claims.Role, ws)
	first := ctl.registry.Register(conn)
	conn.Start()
	ctl.presence.Joined(conn, first)

	ctl.logger.Info("connection joined",
		zap.Int64("participant_id", conn.ParticipantID),
		zap.String("role", string(conn.Role)),
		zap.String("connection_id", conn.ID),
		zap.Bool("first", first))
	return conn, true
}

func (ctl *MessageSocketController) rejectJoin(ws *websocket.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = ws.SetWriteDeadline(deadline)
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), deadline)
	_ = ws.Close()
}

// handleMessage sends a message originating from this connection; the sender
// gets an ack with the stored record, other tabs get the regular echo.
func (ctl *MessageSocketController) handleMessage(parent context.Context, conn *realtime.Connection, frame realtime.Frame) {
	var req socketSendData
	if err := json.Unmarshal(frame.Data, &req); err != nil {
		ctl.replyError(conn, "bad_request", "invalid message payload")
		return
	}

	ctx, cancel := context.WithTimeout(parent, ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.send.Execute(ctx, usecase.SendMessageInput{
		SenderID:           conn.ParticipantID,
		RecipientID:        req.RecipientID,
		Content:            req.Content,
		OriginConnectionID: conn.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			ctl.replyError(conn, "invalid_input", "contenu et destinataire_id sont requis")
		case errors.Is(err, usecase.ErrSameRole), errors.Is(err, usecase.ErrUnknownParticipant):
			ctl.replyError(conn, "invalid_recipient", "destinataire invalide")
		case errors.Is(err, usecase.ErrPersistence):
			ctl.replyError(conn, "store_unavailable", "envoi échoué, réessayez")
		default:
			ctl.replyError(conn, "internal_error", "erreur interne")
		}
		return
	}

	if payload, err := realtime.MarshalEvent("message_sent", msg); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *MessageSocketController) replyError(conn *realtime.Connection, code, message string) {
	payload, err := realtime.MarshalEvent(realtime.EventError, gin.H{"code": code, "error": message})
	if err == nil {
		_ = conn.Send(payload)
	}
}
