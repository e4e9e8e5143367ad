package screening

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/utils"
)

const (
	questionsMaxTokens   = 800
	questionsTemperature = 0.7
)

// QuestionGenerator writes technical interview questions for a tech stack.
type QuestionGenerator struct {
	model     ai.ChatModel
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestionGenerator(model ai.ChatModel, log *zap.Logger, maxLogLength int) *QuestionGenerator {
	if model == nil {
		model = ai.Unconfigured{}
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &QuestionGenerator{
		model:     model,
		logger:    logger.WithComponent(log, "questions"),
		maxLogLen: maxLogLength,
	}
}

// Generate returns 3-5 questions per technology. An empty stack, or any failure, yields nil.
func (g *QuestionGenerator) Generate(ctx context.Context, techStack []string) []QuestionSet {
	stack := normalizeStack(techStack)
	if len(stack) == 0 {
		return nil
	}

	raw, err := g.model.Complete(ctx, ai.Request{
		System:      questionsSystemPrompt(stack),
		Messages:    []ai.Message{{Role: ai.RoleUser, Content: questionsUserPrompt}},
		MaxTokens:   questionsMaxTokens,
		Temperature: questionsTemperature,
	})
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			g.logger.Debug("skipping question generation", zap.String("reason", "language model is not configured"))
		} else {
			g.logger.Warn("generating technical questions", zap.Error(err), zap.Strings("tech_stack", stack))
		}
		return nil
	}

	sets, err := ParseQuestions(raw)
	if err != nil {
		g.logger.Warn("generating technical questions",
			zap.Error(err),
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", utils.TruncateForLog(utils.OneLine(raw), g.maxLogLen)),
		)
		return nil
	}

	g.logger.Info("generated technical questions",
		zap.Strings("tech_stack", stack),
		zap.Int("sets", len(sets)),
	)

	return sets
}
