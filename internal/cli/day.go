package cli

import (
	"fmt"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/timeline"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, today, tomorrow, yesterday)." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	defer st.Release()

	intervals := st.Intervals()
	ctx.printf("Schedule for %s:\n\n", day)
	if len(intervals) == 0 {
		ctx.println("  No intervals scheduled")
		return nil
	}

	tbl := newTable("TIME", "TITLE", "LENGTH", "COLOR", "ID")
	busy := 0
	for _, iv := range intervals {
		tbl.AddRow(iv.Span(), iv.DisplayTitle(), formatDuration(iv.Duration()), iv.Color, iv.ID)
		busy += iv.Duration()
	}
	ctx.println(tbl)

	free := 0
	for _, r := range st.FreeRanges(0, constants.MinutesPerDay) {
		free += r.Len()
	}
	ctx.printf("\n%d intervals, %s scheduled, %s free\n", len(intervals), formatDuration(min(busy, constants.MinutesPerDay)), formatDuration(free))
	return nil
}

type GapsCmd struct {
	Date string `help:"Day to inspect." default:"today"`
	Hour int    `help:"Limit to one hour (0-23); -1 for the whole day." default:"-1"`
}

func (c *GapsCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	seg := timeline.Range{Start: 0, End: constants.MinutesPerDay}
	if c.Hour >= 0 {
		if c.Hour >= constants.HoursPerDay {
			return fmt.Errorf("hour must be between 0 and 23, got %d", c.Hour)
		}
		seg = timeline.HourSegment(c.Hour)
	}

	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	defer st.Release()

	gaps := st.FreeRanges(seg.Start, seg.End)
	if len(gaps) == 0 {
		ctx.printf("No free time on %s in %s\n", day, formatRange(seg))
		return nil
	}
	tbl := newTable("FREE", "LENGTH")
	for _, g := range gaps {
		tbl.AddRow(formatRange(g), formatDuration(g.Len()))
	}
	ctx.println(tbl)
	return nil
}

// formatRange renders minute bounds as HH:MM-HH:MM; 1440 prints as 24:00.
func formatRange(r timeline.Range) string {
	clock := func(m int) string {
		return fmt.Sprintf("%02d:%02d", m/constants.MinutesPerHour, m%constants.MinutesPerHour)
	}
	return clock(r.Start) + "-" + clock(r.End)
}
