package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/screening"
)

const (
	PromptShowSummary = "Show summary"
	PromptDumpSummary = "Dump summary to file"
	PromptReset       = "Start a new conversation"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var endPrompt = promptui.Select{
	Label: "Conversation ended. What next?",
	Items: []string{PromptShowSummary, PromptDumpSummary, PromptReset, PromptExit},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive screening conversation",
	Run: func(_ *cobra.Command, _ []string) {
		chat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("provider", "", "language model provider: groq or gemini (default groq)")
	chatCmd.Flags().Bool("word-boundary", false, "match farewell keywords as whole words only")
	chatCmd.Flags().Bool("expose-errors", false, "append raw model errors to fallback replies")

	viper.BindPFlag("ai.provider", chatCmd.Flags().Lookup("provider"))
	viper.BindPFlag("termination.word-boundary", chatCmd.Flags().Lookup("word-boundary"))
	viper.BindPFlag("expose-errors", chatCmd.Flags().Lookup("expose-errors"))
}

func chat() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	model, err := newChatModel(ctx, config, logger)
	if err != nil {
		logger.Fatal("building language model", zap.Error(err))
	}

	orch := screening.New(model, screening.Options{
		WordBoundaryTermination: config.Termination.WordBoundary,
		ExposeErrors:            config.ExposeErrors,
		MaxLogLength:            config.MaxLogLength,
	}, logger)

	if err := converse(ctx, orch, os.Stdout, logger); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// converse alternates between the input prompt and, once the candidate says goodbye,
// the end-of-conversation menu.
func converse(ctx context.Context, orch *screening.Orchestrator, out io.Writer, logger *zap.Logger) error {
	fmt.Fprintf(out, "%s\n\n", screening.GreetingMessage)

	input := promptui.Prompt{
		Label: "You",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return screening.ErrEmptyUtterance
			}
			return nil
		},
	}

	for {
		if orch.Phase() == screening.Ended {
			_, action, err := endPrompt.Run()
			if err != nil {
				return exitOnInterrupt(err)
			}
			if err := handleAction(action, orch, out, logger); err != nil {
				return err
			}
			continue
		}

		utterance, err := input.Run()
		if err != nil {
			return exitOnInterrupt(err)
		}

		res, err := orch.Turn(ctx, utterance)
		if err != nil {
			if errors.Is(err, screening.ErrEmptyUtterance) {
				continue
			}
			return err
		}

		fmt.Fprintf(out, "\nAssistant: %s\n\n", res.Reply)

		if res.QuestionsGenerated {
			printQuestions(out, orch.State().Questions())
		}
	}
}

func handleAction(action string, orch *screening.Orchestrator, out io.Writer, logger *zap.Logger) error {
	switch action {
	case PromptShowSummary:
		pretty, err := json.MarshalIndent(orch.Summary(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Fprintln(out, string(pretty))
		return nil
	case PromptDumpSummary:
		filename, err := orch.Summary().DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump summary to file: %w", err)
		}
		logger.Info("dumping summary to file", zap.String("filename", filename))
		return nil
	case PromptReset:
		orch.Reset()
		fmt.Fprintf(out, "%s\n\n", screening.GreetingMessage)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printQuestions(out io.Writer, sets []screening.QuestionSet) {
	fmt.Fprintln(out, "Technical questions for your stack:")
	for _, set := range sets {
		fmt.Fprintf(out, "\n%s\n", set.Technology)
		for i, q := range set.Questions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, q)
		}
	}
	fmt.Fprintln(out)
}

func exitOnInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}
