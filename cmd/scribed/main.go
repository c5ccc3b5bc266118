// Entry point for the scribed HTTP service: extraction pipeline, transcription
// worker and chi routes, configured from the environment (plus optional YAML).
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	scribe "github.com/vivaneiona/scribe"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config overlay")
	flag.Parse()

	cfg, err := scribe.LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Extraction backends: primary OpenAI, fallback Anthropic. Either may be
	// absent; the gateway handles every configuration including none.
	var primary, secondary scribe.Generator
	if cfg.OpenAIKey != "" {
		primary = scribe.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, logger)
		logger.Info("openai backend initialized")
	}
	if cfg.AnthropicKey != "" {
		secondary = scribe.NewAnthropicGenerator(cfg.AnthropicKey, cfg.AnthropicModel, logger)
		logger.Info("anthropic backend initialized as fallback")
	}
	if primary == nil && secondary == nil {
		logger.Warn("no extraction backend configured; only mock mode will succeed")
	}

	gateway := scribe.NewGateway(primary, secondary, cfg.ProviderTimeout, logger)
	pipeline := scribe.NewPipelineWithLogger(gateway, logger)

	jobs, err := scribe.OpenJobStore(ctx, cfg.JobDB)
	if err != nil {
		logger.Error("job store", "error", err)
		os.Exit(1)
	}
	defer jobs.Close()

	transcriber, err := newTranscriber(ctx, cfg, logger)
	if err != nil {
		logger.Error("transcriber", "error", err)
		os.Exit(1)
	}
	logger.Info("transcriber ready", "provider", transcriber.Name())

	server := scribe.NewServer(pipeline, jobs, logger)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	worker := scribe.NewWorker(jobs, transcriber, time.Second, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("scribed stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("scribed stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl}))
}

// newTranscriber picks the speech-to-text backend. Without a usable key it
// falls back to the canned transcriber so the upload path still works offline.
func newTranscriber(ctx context.Context, cfg *scribe.Config, logger *slog.Logger) (scribe.Transcriber, error) {
	switch cfg.Transcriber {
	case "gemini":
		if cfg.GeminiKey == "" {
			break
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return scribe.NewGeminiTranscriber(client, cfg.GeminiModel, logger), nil
	case "whisper":
		if cfg.OpenAIKey == "" {
			break
		}
		return scribe.NewWhisperTranscriber(cfg.OpenAIKey, logger), nil
	}
	logger.Warn("no speech-to-text backend configured; using canned transcripts")
	return scribe.CannedTranscriber{}, nil
}
