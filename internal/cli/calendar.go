package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/tokei/internal/calendar"
)

type ExportCmd struct {
	Date string `short:"d" help:"Day to export." default:"today"`
	Out  string `short:"o" help:"Output file; stdout when empty." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	intervals := st.Intervals()
	st.Release()

	text, err := calendar.Export(day, intervals, ctx.loc())
	if err != nil {
		return err
	}
	if c.Out == "" {
		fmt.Fprint(ctx.out(), text)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(text), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	ctx.printf("✓ Exported %d intervals to %s\n", len(intervals), c.Out)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"iCalendar file to read." type:"existingfile"`
	Date string `short:"d" help:"Day to import events for." default:"today"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	intervals, err := calendar.Import(f, day, ctx.loc())
	if err != nil {
		return err
	}

	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	added := 0
	for _, iv := range intervals {
		if err := st.AddOrUpdate(iv); err != nil {
			if msg, ok := conflictMessage(err); ok {
				ctx.printf("  skipped: %s\n", msg)
			} else {
				ctx.printf("  skipped %s: %v\n", iv.Span(), err)
			}
			continue
		}
		added++
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	ctx.printf("✓ Imported %d of %d events into %s\n", added, len(intervals), day)
	return nil
}
