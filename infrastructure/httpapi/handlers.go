package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
	"webchat/domain/chat"
	errs "webchat/errors"
	"webchat/services"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const (
	messageMissingFields  = "Nome e email são obrigatórios"
	messageCreateFailed   = "Erro ao criar chat, tente novamente. Detalhe: "
	messageUnknownChat    = "Protocolo não encontrado."
	messageFetchFailed    = "Erro ao buscar chat."
	messageListOpenFailed = "Erro ao buscar chats abertos."
)

type handlers struct {
	log      *slog.Logger
	service  services.IChatService
	location *time.Location
}

type openChatRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type messageResponse struct {
	Remetente string `json:"remetente"`
	Texto     string `json:"texto"`
	Data      string `json:"data"`
}

type lastMessageResponse struct {
	Remetente string `json:"remetente"`
	Texto     string `json:"texto"`
	DataHora  string `json:"data_hora"`
}

type chatSummaryResponse struct {
	ID             string               `json:"id"`
	ClienteNome    string               `json:"cliente_nome"`
	ClienteEmail   string               `json:"cliente_email"`
	DataInicio     string               `json:"data_inicio"`
	Status         chat.Status          `json:"status"`
	UltimaMensagem *lastMessageResponse `json:"ultima_mensagem"`
}

func errorBody(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

func (h *handlers) openChat(c *gin.Context) {
	var request openChatRequest
	// An unreadable body is handled like missing fields
	if err := c.ShouldBindJSON(&request); err != nil {
		h.log.Debug("Unreadable chat request", "error", err)
	}
	created, err := h.service.OpenChat(c.Request.Context(), chat.OpenChatCommand{Name: request.Nome, Email: request.Email})
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			c.JSON(http.StatusBadRequest, errorBody(messageMissingFields))
			return
		}
		c.JSON(http.StatusInternalServerError, errorBody(messageCreateFailed+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "chat_iniciado",
		"protocolo": created.ID,
		"nome":      created.ClientName,
		"email":     created.ClientEmail,
	})
}

func (h *handlers) getChat(c *gin.Context) {
	protocol := c.Param("protocolo")
	found, messages, err := h.service.GetChat(c.Request.Context(), protocol)
	if err != nil {
		status := errs.MapToHTTPStatus(err)
		if status == http.StatusNotFound {
			c.JSON(status, errorBody(messageUnknownChat))
			return
		}
		h.log.Error("Failed to read chat", "protocol", protocol, "error", err)
		c.JSON(status, errorBody(messageFetchFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"protocolo": found.ID,
		"nome":      found.ClientName,
		"email":     found.ClientEmail,
		"mensagens": lo.Map(messages, func(m chat.Message, _ int) messageResponse {
			return messageResponse{Remetente: m.Sender, Texto: m.Text, Data: chat.FormatTime(m.CreatedAt, h.location)}
		}),
	})
}

func (h *handlers) listOpenChats(c *gin.Context) {
	summaries, err := h.service.ListOpenChats(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list open chats", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(messageListOpenFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"chats":  lo.Map(summaries, h.toSummaryResponse),
	})
}

func (h *handlers) toSummaryResponse(s chat.Summary, _ int) chatSummaryResponse {
	response := chatSummaryResponse{
		ID:           s.Chat.ID,
		ClienteNome:  s.Chat.ClientName,
		ClienteEmail: s.Chat.ClientEmail,
		DataInicio:   chat.FormatDateTime(s.Chat.StartedAt, h.location),
		Status:       s.Chat.Status,
	}
	if s.LastMessage != nil {
		response.UltimaMensagem = &lastMessageResponse{
			Remetente: s.LastMessage.Sender,
			Texto:     s.LastMessage.Text,
			DataHora:  chat.FormatTime(s.LastMessage.CreatedAt, h.location),
		}
	}
	return response
}
