package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/desertthunder/tunelist/internal/tasks"
	"github.com/desertthunder/tunelist/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.UI.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	loader := r.aggregator()
	progress := make(chan tasks.ProgressUpdate, 16)
	boot := tasks.NewBootstrapper(tasks.BootstrapperOpts{
		Credentials:   r.creds,
		Auth:          r.gateways.Auth,
		Loader:        loader,
		ClearOnReject: r.config.Session.ClearOnReject,
		Progress:      progress,
		Logger:        shared.WithLogger(fileLogger, "component", "bootstrap"),
	})

	model := ui.NewModel(ctx, ui.ModelOpts{
		Bootstrapper: boot,
		Controller: ui.NewController(ui.ControllerOpts{
			Auth:      r.gateways.Auth,
			Playlists: r.gateways.Playlists,
			Music:     r.music,
			Loader:    loader,
			Messages:  r.messages,
		}),
		Progress: progress,
		Locale:   r.config.UI.Locale,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
