package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/schedule"
)

type AddCmd struct {
	Title string `arg:"" optional:"" help:"Interval title."`
	Start string `short:"s" required:"" help:"Start time (HH:MM)."`
	End   string `short:"e" required:"" help:"End time (HH:MM); earlier than start crosses midnight."`
	Color string `short:"c" help:"Color tag (red, orange, yellow, green, blue, purple, pink)." default:"blue"`
	Date  string `short:"d" help:"Day to add to." default:"today"`
}

func (c *AddCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	start, err := models.ParseClock(c.Start)
	if err != nil {
		return err
	}
	end, err := models.ParseClock(c.End)
	if err != nil {
		return err
	}
	tag, err := models.ParseColorTag(c.Color)
	if err != nil {
		return err
	}

	iv := models.NewInterval(c.Title, start, end, tag)
	if err := save(ctx, day, iv); err != nil {
		return err
	}
	ctx.printf("✓ Added %s %s (%s)\n", iv.Span(), iv.DisplayTitle(), iv.ID)
	return nil
}

type EditCmd struct {
	ID    string `arg:"" help:"Interval id."`
	Title string `help:"New title."`
	Start string `help:"New start time (HH:MM)."`
	End   string `help:"New end time (HH:MM)."`
	Color string `help:"New color tag."`
	Date  string `short:"d" help:"Day holding the interval." default:"today"`
}

func (c *EditCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}

	iv, ok := st.Get(c.ID)
	if !ok {
		st.Release()
		return fmt.Errorf("no interval %q on %s", c.ID, day)
	}
	if err := c.apply(&iv); err != nil {
		st.Release()
		return err
	}
	if err := st.AddOrUpdate(iv); err != nil {
		st.Release()
		return rejection(err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	ctx.printf("✓ Updated %s %s\n", iv.Span(), iv.DisplayTitle())
	return nil
}

func (c *EditCmd) apply(iv *models.Interval) error {
	if c.Title != "" {
		iv.Title = c.Title
	}
	if c.Start != "" {
		start, err := models.ParseClock(c.Start)
		if err != nil {
			return err
		}
		iv.Start = start
	}
	if c.End != "" {
		end, err := models.ParseClock(c.End)
		if err != nil {
			return err
		}
		iv.End = end
	}
	if c.Color != "" {
		tag, err := models.ParseColorTag(c.Color)
		if err != nil {
			return err
		}
		iv.Color = tag
	}
	return nil
}

type DeleteCmd struct {
	ID   string `arg:"" help:"Interval id."`
	Date string `short:"d" help:"Day holding the interval." default:"today"`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	if !st.Remove(c.ID) {
		st.Release()
		return fmt.Errorf("no interval %q on %s", c.ID, day)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	ctx.printf("✓ Deleted %s\n", c.ID)
	return nil
}

// save adds or updates iv on day and persists before returning.
func save(ctx *Context, day string, iv models.Interval) error {
	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	if err := st.AddOrUpdate(iv); err != nil {
		st.Release()
		return rejection(err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

func rejection(err error) error {
	if msg, ok := conflictMessage(err); ok {
		return fmt.Errorf("%w: %s", schedule.ErrOverlapConflict, msg)
	}
	if errors.Is(err, models.ErrInvalidInterval) {
		return err
	}
	return fmt.Errorf("failed to save interval: %w", err)
}
