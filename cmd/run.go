package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/grindstone/internal/app"
	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/session"
	"github.com/abhisek/grindstone/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMEventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation and AI features will be unavailable.")
		provider = nil
	}

	svc := app.NewServices(st, provider, session.NewOSLauncher(), datetime.New())
	defer svc.Close()

	return app.Run(svc)
}

// openServices is the shared bootstrap for non-TUI subcommands. The
// launcher is nil: CLI invocations only inspect or mutate state.
func openServices(cmd *cobra.Command) (*app.Services, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	svc := app.NewServices(st, nil, nil, datetime.New())
	return svc, st, nil
}
