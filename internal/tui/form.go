package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tokei/internal/models"
)

// IntervalFormModel holds the edit popup's field values.
type IntervalFormModel struct {
	Title string
	Start string
	End   string
	Color models.ColorTag
}

func newIntervalFormModel(iv models.Interval) *IntervalFormModel {
	return &IntervalFormModel{
		Title: iv.Title,
		Start: iv.Start.String(),
		End:   iv.End.String(),
		Color: iv.Color,
	}
}

// apply copies validated form values onto iv.
func (fm *IntervalFormModel) apply(iv models.Interval) (models.Interval, error) {
	start, err := models.ParseClock(fm.Start)
	if err != nil {
		return iv, err
	}
	end, err := models.ParseClock(fm.End)
	if err != nil {
		return iv, err
	}
	iv.Title = strings.TrimSpace(fm.Title)
	iv.Start = start
	iv.End = end
	iv.Color = fm.Color
	if !iv.Color.Valid() {
		iv.Color = models.DefaultColor
	}
	return iv, iv.Validate()
}

func validateClock(s string) error {
	_, err := models.ParseClock(s)
	return err
}

// NewIntervalForm builds the edit popup. A non-empty problem is shown above
// the fields, for example after a save was rejected.
func NewIntervalForm(fm *IntervalFormModel, heading, problem string) *huh.Form {
	options := make([]huh.Option[models.ColorTag], 0, len(models.ColorTags))
	for _, tag := range models.ColorTags {
		options = append(options, huh.NewOption(string(tag), tag))
	}

	fields := []huh.Field{
		huh.NewNote().Title(heading),
	}
	if problem != "" {
		fields = append(fields, huh.NewNote().Title("Cannot save").Description(problem))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Title").
			Placeholder(models.Interval{}.DisplayTitle()).
			Value(&fm.Title),
		huh.NewInput().
			Title("Start (HH:MM)").
			Value(&fm.Start).
			Validate(validateClock),
		huh.NewInput().
			Title("End (HH:MM)").
			Value(&fm.End).
			Validate(validateClock),
		huh.NewSelect[models.ColorTag]().
			Title("Color").
			Options(options...).
			Value(&fm.Color),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}
