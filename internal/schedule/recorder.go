package schedule

import (
	"errors"
	"time"

	"github.com/julianstephens/tokei/internal/models"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// Recorder captures a start/stop pair of wall-clock times and turns it into
// a candidate interval.
type Recorder struct {
	start  time.Time
	active bool
}

func (r *Recorder) Start(now time.Time) error {
	if r.active {
		return ErrAlreadyRecording
	}
	r.start = now
	r.active = true
	return nil
}

// Stop ends the recording and returns an untitled interval from the start
// minute to the stop minute. A recording that starts and stops within the
// same minute is one minute long rather than covering the whole day.
func (r *Recorder) Stop(now time.Time) (models.Interval, error) {
	if !r.active {
		return models.Interval{}, ErrNotRecording
	}
	r.active = false

	start := models.Clock{Hour: r.start.Hour(), Minute: r.start.Minute()}
	end := models.Clock{Hour: now.Hour(), Minute: now.Minute()}
	if start == end {
		end = models.ClockFromMinute(start.MinuteOfDay() + 1)
	}
	return models.NewInterval("", start, end, models.DefaultColor), nil
}

// Cancel discards an in-progress recording.
func (r *Recorder) Cancel() {
	r.active = false
}

func (r *Recorder) Active() bool {
	return r.active
}

func (r *Recorder) StartedAt() time.Time {
	return r.start
}
