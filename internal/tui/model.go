package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tokei/internal/analysis"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/rollover"
	"github.com/julianstephens/tokei/internal/schedule"
	"github.com/julianstephens/tokei/internal/scroll"
	"github.com/julianstephens/tokei/internal/tui/components/agenda"
	"github.com/julianstephens/tokei/internal/tui/components/dial"
)

type SessionState int

const (
	StateMain SessionState = iota
	StateEditing
	StateConfirmDelete
	StateAnalysis
)

const (
	clockInterval = time.Second
	frameInterval = 16 * time.Millisecond

	headerLines = 1
	footerLines = 2
	paneGap     = 2
	noticeQueue = 16
)

// Options configures a Model.
type Options struct {
	Store *schedule.Store
	// Analyzer may be nil when no API key is configured.
	Analyzer analysis.Analyzer
	Scroll   scroll.Params
	Location *time.Location
	// Rollover is the cron spec used to follow today; empty means midnight.
	Rollover string
	Now      func() time.Time
	Context  context.Context
}

type tickMsg time.Time

type frameMsg struct{}

type storeEventMsg schedule.Event

type rolloverMsg string

type analysisDoneMsg analysis.Outcome

type Model struct {
	ctx      context.Context
	store    *schedule.Store
	analyzer analysis.Analyzer
	loc      *time.Location
	now      func() time.Time

	state SessionState
	keys  KeyMap
	help  help.Model

	agenda   agenda.Model
	layout   dial.Layout
	recorder *schedule.Recorder
	clock    time.Time

	form      *huh.Form
	formModel *IntervalFormModel
	editing   models.Interval
	isNew     bool

	deleteID string

	analyzing bool
	report    viewport.Model

	notices     chan tea.Msg
	done        chan struct{}
	unsubscribe func()
	rollover    *rollover.Job
	followToday bool
	framing     bool

	status   string
	warn     bool
	quitting bool
	width    int
	height   int
}

func NewModel(opts Options) (Model, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	m := Model{
		ctx:      opts.Context,
		store:    opts.Store,
		analyzer: opts.Analyzer,
		loc:      opts.Location,
		now:      opts.Now,
		state:    StateMain,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		agenda:   agenda.New(opts.Scroll),
		layout:   dial.NewLayout(0, 0),
		recorder: &schedule.Recorder{},
		report:   viewport.New(0, 0),
		notices:  make(chan tea.Msg, noticeQueue),
		done:     make(chan struct{}),
	}
	m.clock = m.currentTime()
	m.followToday = m.store.ActiveDay() == m.today()

	notices := m.notices
	m.unsubscribe = m.store.Subscribe(func(ev schedule.Event) {
		notify(notices, storeEventMsg(ev))
	})

	job, err := rollover.New(opts.Rollover, m.loc, func(day string) {
		notify(notices, rolloverMsg(day))
	})
	if err != nil {
		m.unsubscribe()
		return Model{}, err
	}
	m.rollover = job
	m.rollover.Start()

	m.refresh()
	return m, nil
}

// notify delivers msg without blocking the sender. A full queue drops it;
// every notice leads to a full refresh, so a later one covers it.
func notify(ch chan tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.listen())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// listen waits for the next store or rollover notice.
func (m Model) listen() tea.Cmd {
	notices, done := m.notices, m.done
	return func() tea.Msg {
		select {
		case msg := <-notices:
			return msg
		case <-done:
			return nil
		}
	}
}

func (m Model) currentTime() time.Time {
	return m.now().In(m.loc)
}

func (m Model) today() string {
	return models.FormatDayKey(m.currentTime())
}

// refresh reloads the agenda from the store.
func (m *Model) refresh() {
	store := m.store
	m.agenda.SetIntervals(store.Intervals(), store.IsDone)
}

// animate starts the frame ticker if the agenda is settling and no frame is
// already pending.
func (m *Model) animate() tea.Cmd {
	if m.framing || !m.agenda.Animating() {
		return nil
	}
	m.framing = true
	return m.frame()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	body := max(height-headerLines-footerLines, 1)
	m.layout = dial.NewLayout(body, width/2)
	m.agenda.SetSize(max(width-m.layout.Cols-paneGap, 0), body)
	m.report.Width = max(width-4, 0)
	m.report.Height = max(height-headerLines-footerLines-2, 1)
}

func (m *Model) setStatus(msg string, warn bool) {
	m.status = msg
	m.warn = warn
}

// shutdown flushes pending saves and stops background work.
func (m *Model) shutdown() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.unsubscribe()
	<-m.rollover.Stop().Done()
	close(m.done)
	if err := m.store.Suspend(); err != nil {
		logger.Error("failed to save on exit", "error", err)
	}
}

func (m Model) frameData() dial.Frame {
	f := dial.Frame{
		Day:       m.store.ActiveDay(),
		Now:       m.clock,
		Intervals: m.agenda.Intervals(),
		Recording: m.recorder.Active(),
	}
	if iv, ok := m.agenda.Selected(); ok {
		f.Selected = iv.ID
	}
	if f.Recording {
		f.RecordStart = m.recorder.StartedAt()
	}
	return f
}
