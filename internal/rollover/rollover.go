// Package rollover runs a callback when the calendar day turns over.
package rollover

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
)

// Job fires fn with the new day key on a cron schedule.
type Job struct {
	cron     *cron.Cron
	schedule cron.Schedule
	loc      *time.Location
}

// New prepares a job. An empty spec means midnight every day.
func New(spec string, loc *time.Location, fn func(dayKey string)) (*Job, error) {
	if spec == "" {
		spec = constants.DefaultRolloverCron
	}
	if loc == nil {
		loc = time.Local
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", spec, err)
	}

	c := cron.New(cron.WithLocation(loc))
	c.Schedule(schedule, cron.FuncJob(func() {
		day := models.FormatDayKey(time.Now().In(loc))
		logger.Debug("day rollover", "day", day)
		fn(day)
	}))
	return &Job{cron: c, schedule: schedule, loc: loc}, nil
}

// Next returns the first firing time after t.
func (j *Job) Next(t time.Time) time.Time {
	return j.schedule.Next(t.In(j.loc))
}

// Start runs the scheduler in its own goroutine.
func (j *Job) Start() {
	j.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once any
// running callback has finished.
func (j *Job) Stop() context.Context {
	return j.cron.Stop()
}
