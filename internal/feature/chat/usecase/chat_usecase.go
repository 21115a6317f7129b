// Package usecase implements the business logic for the chat feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxMessageLength is the maximum user message length in runes.
	MaxMessageLength = 1000

	// MaxHistoryTurns caps how many previous turns are forwarded.
	MaxHistoryTurns = 10

	// systemPreamble frames the model as the portal's FAQ assistant.
	systemPreamble = "Kamu adalah asisten FAQ untuk portal magang pemerintah kota. " +
		"Jawab pertanyaan tentang pendaftaran, persyaratan dokumen, kuota posisi, " +
		"dan status lamaran secara singkat dan sopan dalam bahasa Indonesia. " +
		"Jika pertanyaan di luar topik magang, arahkan pengguna kembali ke topik."
)

// ErrEmptyMessage is returned when the message is blank.
var ErrEmptyMessage = errors.New("message is required")

// ErrMessageTooLong is returned when the message exceeds MaxMessageLength.
var ErrMessageTooLong = errors.New("message is too long")

// Turn is one prior exchange in the conversation.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Responder generates a reply for an assembled prompt.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// chatUsecase forwards FAQ questions to the language model.
type chatUsecase struct {
	responder Responder
}

// NewChatUsecase creates a new chatUsecase instance.
func NewChatUsecase(responder Responder) *chatUsecase {
	return &chatUsecase{responder: responder}
}

// Ask validates the message, assembles the prompt from the preamble and the
// trimmed history, and returns the model's reply.
func (u *chatUsecase) Ask(ctx context.Context, message string, history []Turn) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", ErrMessageTooLong
	}

	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}

	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\n")
	for _, t := range history {
		switch t.Role {
		case "user":
			b.WriteString("Pengguna: ")
		default:
			b.WriteString("Asisten: ")
		}
		b.WriteString(strings.TrimSpace(t.Content))
		b.WriteString("\n")
	}
	b.WriteString("Pengguna: ")
	b.WriteString(message)

	reply, err := u.responder.Respond(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("chat responder failed: %w", err)
	}
	return reply, nil
}
