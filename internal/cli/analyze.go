package cli

import (
	"github.com/julianstephens/tokei/internal/analysis"
	"github.com/julianstephens/tokei/internal/constants"
)

type AnalyzeCmd struct {
	Date string `arg:"" optional:"" help:"Day to analyse." default:"today"`
}

func (c *AnalyzeCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	st, err := ctx.OpenSchedule(day)
	if err != nil {
		return err
	}
	defer st.Release()

	analysis.Run(ctx.context(), st, ctx.Analyzer())

	text, ok := st.Analysis()
	if !ok {
		ctx.println(constants.NoAnalysisMessage)
		return nil
	}
	ctx.printf("Analysis for %s:\n\n%s\n", day, text)
	return nil
}
