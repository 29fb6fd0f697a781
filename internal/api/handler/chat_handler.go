package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// ChatHandler handles the support chat endpoints.
type ChatHandler struct {
	chatService ports.ChatService
}

func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// History handles GET /v1/messages?peer_id=.
//
// @Summary      Fetch the conversation with a peer
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        peer_id  query     string  true  "The other participant's user id"
// @Success      200      {object}  listMessagesResponse
// @Failure      400      {object}  errorEnvelope
// @Failure      401      {object}  errorEnvelope
// @Router       /v1/messages [get]
func (h *ChatHandler) History(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	peerID := c.QueryParam("peer_id")
	if peerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "peer_id is required")
	}

	messages, err := h.chatService.History(c.Request().Context(), actor, peerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListMessagesResponse(messages))
}

// Send handles POST /v1/messages. The reply from support arrives
// asynchronously; only the stored outbound message is returned.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Router       /v1/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chatService.Send(c.Request().Context(), actor, req.ReceiverID, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}
