package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/store"
)

// deps are the long-lived collaborators shared by the TUI and generate.
type deps struct {
	cfg    *config.Config
	log    *logger.Logger
	store  *store.Store
	client *content.Client
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
	d.log.Sync()
}

// buildDeps loads and validates configuration, then opens the logger, the
// store and the provider chain.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY, or edit %s)",
			err, config.DefaultPath())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	d := &deps{cfg: cfg, log: log}

	d.store, err = openConfiguredStore(cfg)
	if err != nil {
		d.Close()
		return nil, err
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, d.store.EventRepo(), log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	log.Info("provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelID())

	d.client = content.NewClient(provider, cfg.Content)
	return d, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	preset, err := sessionFromFlags(cmd)
	if err != nil {
		return err
	}

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ctrl := session.New(d.client, session.Options{
		Recorder: d.store.EventRepo(),
		Logger:   d.log,
		Timeout:  d.cfg.LLM.Timeout,
	})

	return app.Run(cmd.Context(), app.Deps{
		Controller: ctrl,
		Sessions:   d.store.EventRepo(),
		Preset:     preset,
	})
}
