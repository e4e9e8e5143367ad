package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/ai/gemini"
	"github.com/spigell/talentscout/internal/ai/groq"
	"github.com/spigell/talentscout/internal/secrets"
)

// newChatModel builds the configured provider. A missing credential is not fatal:
// the conversation still runs and every reply explains that the key is missing.
func newChatModel(ctx context.Context, config *Config, logger *zap.Logger) (ai.ChatModel, error) {
	var (
		model ai.ChatModel
		err   error
	)

	switch config.AI.Provider {
	case providerGemini:
		model, err = newGeminiModel(ctx, config, logger)
	case providerGroq, "":
		model, err = newGroqModel(config, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) || errors.Is(err, secrets.ErrNotConfigured) {
			logger.Warn("language model is not configured, replies will report the missing key",
				zap.String("provider", config.AI.Provider),
				zap.Error(err),
			)
			return ai.Unconfigured{Provider: config.AI.Provider}, nil
		}
		return nil, err
	}

	logger.Info("language model configured",
		zap.String("provider", config.AI.Provider),
		zap.String("model", model.Model()),
	)

	return model, nil
}

func newGroqModel(config *Config, logger *zap.Logger) (ai.ChatModel, error) {
	cfg := config.AI.Groq

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "groq api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GROQ_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.groq.api-key, ai.groq.api-key-file or GROQ_API_KEY)", err)
	}

	return groq.New(groq.Config{
		APIKey:       apiKey,
		BaseURL:      cfg.BaseURL,
		Model:        cfg.Model,
		Timeout:      cfg.Timeout,
		MaxLogLength: config.MaxLogLength,
	}, logger)
}

func newGeminiModel(ctx context.Context, config *Config, logger *zap.Logger) (ai.ChatModel, error) {
	cfg := config.AI.Gemini

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key, ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	return gemini.NewGenerator(ctx, apiKey, cfg.Model, config.MaxLogLength, logger)
}
