// Package handler provides the HTTP handler for the chat feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"magang_backend/internal/feature/chat/usecase"
	"magang_backend/internal/shared/response"
)

// ChatUsecase defines the operation the handler depends on.
type ChatUsecase interface {
	Ask(ctx context.Context, message string, history []usecase.Turn) (string, error)
}

// ChatHandler handles HTTP requests for the FAQ chatbot.
type ChatHandler struct {
	chat ChatUsecase
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chat ChatUsecase) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// chatReq is the request body for POST /chat.
type chatReq struct {
	Message string `json:"message" binding:"required"`
	History []struct {
		Role    string `json:"role" binding:"required,oneof=user assistant"`
		Content string `json:"content" binding:"required"`
	} `json:"history" binding:"max=20"`
}

// Ask handles POST /chat.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}

	history := make([]usecase.Turn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, usecase.Turn{Role: t.Role, Content: t.Content})
	}

	reply, err := h.chat.Ask(c.Request.Context(), req.Message, history)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyMessage), errors.Is(err, usecase.ErrMessageTooLong):
			c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		default:
			slog.Error("chat request failed", "error", err)
			c.JSON(http.StatusBadGateway, response.Error("assistant is unavailable"))
		}
		return
	}
	c.JSON(http.StatusOK, response.OK("reply generated", gin.H{"reply": reply}))
}
