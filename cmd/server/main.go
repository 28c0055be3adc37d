// Command server runs the streaming transcription backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veslo-ai/scribe/api"
	"github.com/veslo-ai/scribe/config"
	"github.com/veslo-ai/scribe/llm"
	"github.com/veslo-ai/scribe/llm/ollama"
	"github.com/veslo-ai/scribe/logger"
	"github.com/veslo-ai/scribe/prompts"
	"github.com/veslo-ai/scribe/resilience"
	"github.com/veslo-ai/scribe/server"
	"github.com/veslo-ai/scribe/server/endpoint"
	"github.com/veslo-ai/scribe/session"
	"github.com/veslo-ai/scribe/transcription"
	"github.com/veslo-ai/scribe/transcription/whisper"
	"github.com/veslo-ai/scribe/version"
)

const serviceName = "scribe"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	log.Info("Starting service", map[string]interface{}{
		"version":     version.GetShortVersion(),
		"environment": cfg.Environment,
	})

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	generator, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	store := prompts.NewStore()
	if cfg.Prompts.File != "" {
		if err := store.LoadFile(cfg.Prompts.File); err != nil {
			log.WithError(err).Warn("prompt library not loaded, using built-in default")
		} else {
			log.Info("prompt library loaded", map[string]interface{}{
				"prompts": store.Names(),
			})
		}
	}

	bhCfg := resilience.DefaultBulkheadConfig("engine")
	bhCfg.MaxConcurrent = cfg.Engine.MaxConcurrent
	bhCfg.MaxWait = time.Duration(cfg.Engine.MaxWaitMS) * time.Millisecond
	bulkhead := resilience.NewBulkhead(bhCfg)

	hub := session.NewHub(log)

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Name, healthChecker(engine, generator))

	handler := api.NewHandler(api.Options{
		Engine:   engine,
		LLM:      generator,
		Prompts:  store,
		Hub:      hub,
		Bulkhead: bulkhead,
		Defaults: cfg.Session.Settings(),
		Logger:   log,
	})
	handler.Register(srv.GinEngine())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Streaming sessions are abandoned, not drained: close them so their
	// read loops return before the listener goes away.
	hub.Each(func(s *session.Session) { hub.Release(s.ID()) })

	return srv.Stop(context.Background())
}

func buildEngine(cfg *config.Config) (transcription.Provider, error) {
	reg := transcription.NewRegistry()
	reg.RegisterFactory(whisper.ProviderName, whisper.Factory())

	return reg.Create(cfg.Engine.Provider, map[string]any{
		"url":          cfg.Engine.Whisper.URL,
		"model":        cfg.Engine.Whisper.Model,
		"device":       cfg.Engine.Whisper.Device,
		"compute_type": cfg.Engine.Whisper.ComputeType,
		"timeout":      cfg.Engine.Whisper.Timeout,
	})
}

func buildLLM(cfg *config.Config) (llm.Provider, error) {
	reg := llm.NewRegistry()
	reg.RegisterFactory(ollama.ProviderName, ollama.Factory())

	return reg.Create(cfg.LLM.Provider, map[string]any{
		"base_url":    cfg.LLM.Ollama.BaseURL,
		"model":       cfg.LLM.Ollama.Model,
		"temperature": cfg.LLM.Ollama.Temperature,
		"timeout":     cfg.LLM.Ollama.Timeout,
	})
}

// healthChecker reports the reachability of the two external collaborators.
func healthChecker(engine transcription.Provider, generator llm.Provider) endpoint.HealthChecker {
	return func(ctx context.Context) []endpoint.ComponentHealth {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		components := make([]endpoint.ComponentHealth, 0, 2)
		for _, p := range []interface {
			Name() string
			IsAvailable(context.Context) bool
		}{engine, generator} {
			status := endpoint.StatusHealthy
			if !p.IsAvailable(checkCtx) {
				status = endpoint.StatusDegraded
			}
			components = append(components, endpoint.ComponentHealth{Name: p.Name(), Status: status})
		}
		return components
	}
}
