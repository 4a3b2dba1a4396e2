package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tokei/internal/analysis"
	"github.com/julianstephens/tokei/internal/config"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/schedule"
	"github.com/julianstephens/tokei/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	cfg := ctx.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	st, err := schedule.New(ctx.Store, ctx.Today(), schedule.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to save schedules", "error", err)
		}
	}()

	// Without a key the analyze panel reports that analysis is unavailable
	// instead of failing each request.
	var analyzer analysis.Analyzer
	if ctx.NewAnalyzer != nil || apiKey() != "" {
		analyzer = ctx.Analyzer()
	}

	m, err := tui.NewModel(tui.Options{
		Store:    st,
		Analyzer: analyzer,
		Scroll:   cfg.ScrollParams(),
		Location: ctx.loc(),
		Rollover: cfg.RolloverCron,
		Now:      ctx.Now,
		Context:  ctx.context(),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx.context()),
	)
	if _, err := p.Run(); err != nil && ctx.context().Err() == nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
