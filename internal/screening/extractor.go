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
	extractorMaxTokens   = 300
	extractorTemperature = 0.3

	defaultMaxLogLength = 200
)

// Extractor derives a partial candidate profile from one utterance.
type Extractor struct {
	model     ai.ChatModel
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(model ai.ChatModel, log *zap.Logger, maxLogLength int) *Extractor {
	if model == nil {
		model = ai.Unconfigured{}
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Extractor{
		model:     model,
		logger:    logger.WithComponent(log, "extractor"),
		maxLogLen: maxLogLength,
	}
}

// Extract asks the model for the profile fields mentioned in utterance.
// Every failure is logged and reported as an empty profile.
func (e *Extractor) Extract(ctx context.Context, utterance string) Profile {
	raw, err := e.model.Complete(ctx, ai.Request{
		System:      extractorSystemPrompt,
		Messages:    []ai.Message{{Role: ai.RoleUser, Content: utterance}},
		MaxTokens:   extractorMaxTokens,
		Temperature: extractorTemperature,
	})
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			e.logger.Debug("skipping extraction", zap.String("reason", "language model is not configured"))
		} else {
			e.logger.Warn("extracting candidate info", zap.Error(err))
		}
		return Profile{}
	}

	profile, err := ParseProfile(raw)
	if err != nil {
		e.logger.Warn("extracting candidate info",
			zap.Error(err),
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", utils.TruncateForLog(utils.OneLine(raw), e.maxLogLen)),
		)
		return Profile{}
	}

	e.logger.Debug("extracted candidate info",
		zap.Int("fields", len(profile.Fields())),
		zap.Strings("tech_stack", profile.TechStack),
	)

	return profile
}
