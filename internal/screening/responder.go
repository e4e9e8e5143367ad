package screening

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/logger"
)

const (
	responderMaxTokens   = 500
	responderTemperature = 0.7
)

// Replies used instead of a model answer when the call fails.
const (
	ReplyNotConfigured    = "Error: language model API key is not configured"
	ReplyEmptyCompletion  = "I apologize, but I received an empty response. Please try again."
	ReplyTechnicalTrouble = "I apologize, but I'm experiencing technical difficulties. Please try again later."
)

// Responder produces the assistant's next reply from the conversation history.
type Responder struct {
	model        ai.ChatModel
	logger       *zap.Logger
	exposeErrors bool
}

// NewResponder creates a Responder. With exposeErrors the raw error text is appended
// to the technical-difficulties reply.
func NewResponder(model ai.ChatModel, log *zap.Logger, exposeErrors bool) *Responder {
	if model == nil {
		model = ai.Unconfigured{}
	}

	return &Responder{
		model:        model,
		logger:       logger.WithComponent(log, "responder"),
		exposeErrors: exposeErrors,
	}
}

// Reply never fails: errors are mapped onto fixed fallback replies.
func (r *Responder) Reply(ctx context.Context, history []Message) string {
	messages := make([]ai.Message, 0, len(history))
	for _, msg := range history {
		messages = append(messages, ai.Message{Role: ai.Role(msg.Role), Content: msg.Content})
	}

	reply, err := r.model.Complete(ctx, ai.Request{
		System:      responderSystemPrompt,
		Messages:    messages,
		MaxTokens:   responderMaxTokens,
		Temperature: responderTemperature,
	})

	switch {
	case err == nil:
		return reply
	case errors.Is(err, ai.ErrNotConfigured):
		r.logger.Warn("generating reply", zap.Error(err))
		return ReplyNotConfigured
	case errors.Is(err, ai.ErrEmptyCompletion):
		r.logger.Warn("generating reply", zap.Error(err))
		return ReplyEmptyCompletion
	default:
		r.logger.Error("generating reply", zap.Error(err))
		if r.exposeErrors {
			return ReplyTechnicalTrouble + " Error: " + err.Error()
		}
		return ReplyTechnicalTrouble
	}
}
