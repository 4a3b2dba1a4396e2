package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tokei/internal/analysis"
	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/geometry"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/schedule"
	"github.com/julianstephens/tokei/internal/timeline"
	"github.com/julianstephens/tokei/internal/tui/components/dial"
)

const defaultProposalHour = 9

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.clock = m.currentTime()
		return m, m.tick()

	case frameMsg:
		m.framing = false
		m.agenda.Step(frameInterval)
		return m, m.animate()

	case storeEventMsg:
		m.refresh()
		if msg.Kind == schedule.EventAnalysisUpdated {
			m.updateReport()
		}
		return m, m.listen()

	case rolloverMsg:
		day := string(msg)
		if m.followToday && m.store.ActiveDay() != day {
			m.changeDay(day)
		}
		return m, m.listen()

	case analysisDoneMsg:
		m.analyzing = false
		if analysis.Outcome(msg) == analysis.Discarded {
			m.setStatus("schedule changed during analysis; press A to retry", true)
		}
		m.updateReport()
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateAnalysis:
		return m.updateAnalysis(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateMain(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.PrevDay), key.Matches(msg, m.keys.NextDay):
		delta := 1
		if key.Matches(msg, m.keys.PrevDay) {
			delta = -1
		}
		day, err := models.ShiftDayKey(m.store.ActiveDay(), delta)
		if err != nil {
			m.setStatus(err.Error(), true)
			break
		}
		m.changeDay(day)

	case key.Matches(msg, m.keys.Today):
		m.changeDay(m.today())

	case key.Matches(msg, m.keys.Up):
		m.agenda.Move(-1)
		return m, m.animate()

	case key.Matches(msg, m.keys.Down):
		m.agenda.Move(1)
		return m, m.animate()

	case key.Matches(msg, m.keys.Add):
		return m, m.openForm(m.proposal(), true)

	case key.Matches(msg, m.keys.Edit):
		if iv, ok := m.agenda.Selected(); ok {
			return m, m.openForm(iv, false)
		}

	case key.Matches(msg, m.keys.Delete):
		if iv, ok := m.agenda.Selected(); ok {
			m.deleteID = iv.ID
			m.state = StateConfirmDelete
		}

	case key.Matches(msg, m.keys.Done):
		if iv, ok := m.agenda.Selected(); ok {
			m.store.ToggleDone(iv.ID)
		}

	case key.Matches(msg, m.keys.Record):
		return m, m.toggleRecording()

	case key.Matches(msg, m.keys.Analyze):
		return m, m.startAnalysis()
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row := msg.Y - headerLines
	at := m.currentTime()
	agendaX := m.layout.Cols + paneGap

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.agenda.Wheel(1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.agenda.Wheel(-1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.X >= agendaX {
			m.agenda.Press(row, at)
			break
		}
		return m, m.tapDial(msg.X, row)

	case msg.Action == tea.MouseActionMotion:
		m.agenda.Drag(row, at)

	case msg.Action == tea.MouseActionRelease:
		m.agenda.Release(row, at)
	}
	return m, m.animate()
}

// tapDial opens the form for whatever lies under a click on the dial.
func (m *Model) tapDial(col, row int) tea.Cmd {
	switch h := dial.Hit(m.layout, m.store, col, row); h.Kind {
	case geometry.HitInterval:
		m.agenda.SelectID(h.Interval.ID)
		return tea.Batch(m.openForm(h.Interval, false), m.animate())
	case geometry.HitEmpty:
		return m.openForm(h.Proposal, true)
	}
	return nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submitForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.store.Remove(m.deleteID) {
			m.refresh()
			m.setStatus("interval deleted", false)
		}
		m.deleteID = ""
		m.state = StateMain
	case "n", "N", "esc", "q":
		m.deleteID = ""
		m.state = StateMain
	}
	return m, nil
}

func (m Model) updateAnalysis(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc, key.Matches(keyMsg, m.keys.Analyze), keyMsg.String() == "q":
			m.state = StateMain
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.report, cmd = m.report.Update(msg)
	return m, cmd
}

func (m *Model) changeDay(day string) {
	if err := m.store.ChangeDay(day); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.followToday = day == m.today()
	m.setStatus("", false)
	m.refresh()
}

// proposal is the interval offered by the add key: the first free span of
// the current hour, or of 09:00 when viewing another day.
func (m *Model) proposal() models.Interval {
	hour := defaultProposalHour
	if m.store.ActiveDay() == m.today() {
		hour = m.clock.Hour()
	}
	iv := models.NewHourInterval(hour)
	seg := timeline.HourSegment(hour)
	if free := m.store.FreeRanges(seg.Start, seg.End); len(free) > 0 {
		iv.Start = models.ClockFromMinute(free[0].Start)
		iv.End = models.ClockFromMinute(free[0].End)
	}
	return iv
}

func (m *Model) openForm(iv models.Interval, isNew bool) tea.Cmd {
	m.editing = iv
	m.isNew = isNew
	m.formModel = newIntervalFormModel(iv)
	return m.showForm("")
}

func (m *Model) showForm(problem string) tea.Cmd {
	heading := "Edit interval"
	if m.isNew {
		heading = "New interval"
	}
	m.form = NewIntervalForm(m.formModel, heading, problem)
	m.state = StateEditing
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formModel = nil
	m.state = StateMain
}

// submitForm saves the edited interval. A rejected save reopens the form
// with the values kept and the reason shown.
func (m *Model) submitForm() tea.Cmd {
	iv, err := m.formModel.apply(m.editing)
	if err == nil {
		err = m.store.AddOrUpdate(iv)
	}
	if err != nil {
		var conflict *schedule.ConflictError
		problem := err.Error()
		if errors.As(err, &conflict) {
			problem = fmt.Sprintf("overlaps %s (%s)", conflict.Existing.DisplayTitle(), conflict.Existing.Span())
		}
		logger.Debug("interval rejected", "id", iv.ID, "error", err)
		return m.showForm(problem)
	}

	m.closeForm()
	m.refresh()
	m.agenda.SelectID(iv.ID)
	m.setStatus(fmt.Sprintf("saved %s %s", iv.DisplayTitle(), iv.Span()), false)
	return m.animate()
}

func (m *Model) toggleRecording() tea.Cmd {
	now := m.currentTime()
	if !m.recorder.Active() {
		if err := m.recorder.Start(now); err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
		m.setStatus("recording started", false)
		return nil
	}
	iv, err := m.recorder.Stop(now)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	m.setStatus("", false)
	return m.openForm(iv, true)
}

// startAnalysis shows the analysis panel and requests a fresh analysis when
// the current data has not been analysed yet.
func (m *Model) startAnalysis() tea.Cmd {
	m.state = StateAnalysis
	if m.analyzer == nil {
		m.setStatus("analysis unavailable: no API key configured", true)
		m.updateReport()
		return nil
	}
	if m.analyzing {
		m.updateReport()
		return nil
	}

	ticket, ok := analysis.Begin(m.store)
	if !ok {
		m.updateReport()
		return nil
	}
	m.analyzing = true
	m.updateReport()

	ctx, store, analyzer := m.ctx, m.store, m.analyzer
	return func() tea.Msg {
		return analysisDoneMsg(analysis.Complete(ctx, store, analyzer, ticket))
	}
}

func (m *Model) updateReport() {
	text, ok := m.store.Analysis()
	switch {
	case m.analyzing:
		text = "Analyzing schedule..."
	case !ok || text == "":
		text = constants.NoAnalysisMessage
	}
	m.report.SetContent(analysisBodyStyle.Width(max(m.report.Width-2, 10)).Render(text))
}
