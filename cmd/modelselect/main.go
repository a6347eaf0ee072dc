// Command modelselect resolves the configured model slots and optionally
// sends a prompt to one of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/primoagent/modelfactory/pkg/config"
	"github.com/primoagent/modelfactory/pkg/factory"
	"github.com/primoagent/modelfactory/pkg/llm"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML model configuration file")
	envPath := flag.String("env", ".env", "path to a .env file (ignored when missing)")
	useCase := flag.String("use-case", string(config.UseCasePortfolioManager), "slot to send the prompt to")
	prompt := flag.String("prompt", "", "prompt to send; without it the resolved slots are listed")
	stream := flag.Bool("stream", false, "stream the response")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	flag.Parse()

	if err := config.LoadDotEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load env file: %v\n", err)
		os.Exit(1)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(settings.LogLevel)
	defer logger.Sync()

	logger.Debug("configuration loaded",
		zap.String("version", Version),
		zap.String("config", *configPath))

	f := factory.New(factory.WithSettings(settings), factory.WithLogger(logger))

	if *prompt == "" {
		listSlots(f)
		return
	}

	uc, err := config.ParseUseCase(*useCase)
	if err != nil {
		logger.Fatal("invalid use case", zap.Error(err))
	}

	if req, err := settings.Model(uc); err == nil {
		logger.Debug("resolved model", zap.String("use_case", string(uc)), zap.String("request", llm.DescribeModelRequest(req)))
	}

	client, err := f.ModelFor(uc)
	if err != nil {
		logger.Fatal("failed to create model", zap.String("use_case", string(uc)), zap.Error(err))
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	req := llm.ChatRequest{
		Messages: []llm.Message{llm.NewTextMessage(llm.RoleUser, *prompt)},
		Stream:   *stream,
	}

	if *stream {
		if err := streamPrompt(ctx, client, req, logger); err != nil {
			logger.Fatal("streaming failed", zap.Error(err))
		}
		return
	}

	resp, err := client.ChatCompletion(ctx, req)
	if err != nil {
		logger.Fatal("chat completion failed", zap.Error(err))
	}
	fmt.Println(resp.Text())
	logger.Info("completion finished",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))
}

func listSlots(f *factory.Factory) {
	for _, uc := range config.UseCases() {
		client, err := f.ModelFor(uc)
		if err != nil {
			req, _ := f.Settings().Model(uc)
			fmt.Printf("%-22s %s: %v\n", uc.Short(), llm.DescribeModelRequest(req), err)
			continue
		}
		info := client.GetModelInfo()
		fmt.Printf("%-22s %-10s %-32s %.2f\n", uc.Short(), info.Provider, info.Name, info.Temperature)
		client.Close()
	}
}

// streamPrompt prints deltas as they arrive and collects the full reply
func streamPrompt(ctx context.Context, client llm.Client, req llm.ChatRequest, logger *zap.Logger) error {
	events, err := client.StreamChatCompletion(ctx, req)
	if err != nil {
		return err
	}

	printed := make(chan llm.StreamEvent)
	go func() {
		defer close(printed)
		for event := range events {
			if event.IsDelta() {
				fmt.Print(event.Choice.Delta.Content)
			}
			select {
			case printed <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	resp, err := llm.CollectStream(ctx, printed)
	for range printed {
	}
	fmt.Println()
	if err != nil {
		return err
	}

	logger.Info("stream finished",
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("chars", len(resp.Text())))
	return nil
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
