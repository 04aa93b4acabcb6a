package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trademind/assistant/internal/profile"
	"github.com/trademind/assistant/internal/trade"
	"github.com/trademind/assistant/plugin/extract"
	"github.com/trademind/assistant/plugin/speech"
	"github.com/trademind/assistant/server/telegram"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "trademind",
	Short: "A Telegram bot that turns trade screenshots into a labeled journal entry",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := loadProfile()
		if err := instanceProfile.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			os.Exit(1)
		}

		logger := newLogger(instanceProfile)
		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := run(ctx, instanceProfile, logger); err != nil {
			logger.Error("bot exited with error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	// .env is a convenience for local development, absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the bot, can be "prod" or "dev"`)
	_ = viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))

	viper.SetEnvPrefix("trademind")
	viper.AutomaticEnv()
}

func loadProfile() *profile.Profile {
	p := &profile.Profile{Version: version}
	p.FromEnv()
	if mode := viper.GetString("mode"); mode != "" {
		p.Mode = mode
	}
	return p
}

func newLogger(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if p.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(ctx context.Context, p *profile.Profile, logger *slog.Logger) error {
	if !p.IsExtractionEnabled() {
		logger.Warn("TRADEMIND_OPENROUTER_API_KEY is not set, trade detail extraction will be unavailable")
	}

	extractor := extract.NewExtractor(&extract.Config{
		APIKey: p.OpenRouterAPIKey,
		Model:  p.LLMModel,
	})

	transcriber := speech.New(speech.Config{
		BinPath:  p.WhisperBin,
		Model:    p.WhisperModel,
		Language: p.WhisperLanguage,
		Device:   p.WhisperDevice,
	}, speech.NewModelCache())

	api, err := telegram.Connect(p.BotToken)
	if err != nil {
		return err
	}

	store := trade.NewSessionStore()
	machine := trade.NewMachine(store, trade.Deps{
		Files:     telegram.NewFileService(api),
		Speech:    speechAdapter{inner: transcriber},
		Extractor: extractorAdapter{inner: extractor},
		Composer:  composerAdapter{},
		Logger:    logger,
	})

	bot := telegram.New(api, p, machine, logger)

	logger.Info("trademind starting",
		slog.String("version", p.Version),
		slog.String("mode", p.Mode),
		slog.Int("allowed_users", len(p.AllowedUserIDs)))

	return bot.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
