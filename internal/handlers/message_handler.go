package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
	"github.com/pawhaven/backend/internal/services"
)

// MessageHandler persists and forwards point-to-point messages
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	directory         services.Directory
	publisher         services.EventPublisher
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, directory services.Directory, publisher services.EventPublisher) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		directory:         directory,
		publisher:         publisher,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages/send", h.Send)
	g.GET("/messages/users", h.ListUsers)
	g.GET("/messages/latest-messages", h.ListConversationPeers)
	g.GET("/messages/:senderKind/:senderId/:receiverKind/:receiverId", h.History)
}

// Send persists a message and emits it to the receiver's channel
func (h *MessageHandler) Send(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	receiver := models.IdentityRef{ID: req.ReceiverID, Kind: req.ReceiverKind}
	if _, err := h.directory.Resolve(claims.Ref()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sender not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, err := h.directory.Resolve(receiver); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Receiver not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		SenderID:     claims.UserID,
		SenderKind:   claims.Kind,
		ReceiverID:   receiver.ID,
		ReceiverKind: receiver.Kind,
		Text:         req.Text,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publisher.Emit(receiver, services.EventMessage, message)

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": message})
}

// refParams parses a kind/id path-parameter pair into an identity reference
func refParams(c echo.Context, kindParam, idParam string) (models.IdentityRef, error) {
	kind := models.IdentityKind(c.Param(kindParam))
	switch kind {
	case models.KindUser, models.KindVerified, models.KindAdmin:
	default:
		return models.IdentityRef{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid identity kind")
	}

	id, err := strconv.ParseUint(c.Param(idParam), 10, 32)
	if err != nil {
		return models.IdentityRef{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid identity ID")
	}

	return models.IdentityRef{ID: uint(id), Kind: kind}, nil
}

// History returns every message between the pair, oldest first, regardless
// of which side is named first.
func (h *MessageHandler) History(c echo.Context) error {
	sender, err := refParams(c, "senderKind", "senderId")
	if err != nil {
		return err
	}
	receiver, err := refParams(c, "receiverKind", "receiverId")
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), sender, receiver)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": messages})
}

// ListUsers returns the full identity directory for starting a conversation
func (h *MessageHandler) ListUsers(c echo.Context) error {
	identities, err := h.directory.All()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": identities})
}

// ListConversationPeers returns every identity with its latest exchanged
// message, sorted by has-messages then latest activity.
func (h *MessageHandler) ListConversationPeers(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	identities, err := h.directory.All()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	peers := make([]models.ConversationPeer, 0, len(identities))
	for _, identity := range identities {
		if identity.Ref() == claims.Ref() {
			continue
		}

		peer := models.ConversationPeer{Identity: identity}
		latest, err := h.messageRepository.LatestBetween(c.Request().Context(), claims.Ref(), identity.Ref())
		if err == nil {
			peer.HasMessages = true
			peer.LastMessage = latest.Text
			t := latest.CreatedAt
			peer.LastMessageAt = &t
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		peers = append(peers, peer)
	}

	sort.SliceStable(peers, func(i, j int) bool {
		if peers[i].HasMessages != peers[j].HasMessages {
			return peers[i].HasMessages
		}
		if peers[i].HasMessages && peers[j].HasMessages {
			return peers[i].LastMessageAt.After(*peers[j].LastMessageAt)
		}
		return false
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": peers})
}
