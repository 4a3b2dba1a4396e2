package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/tui/components/dial"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateAnalysis:
		content = m.viewAnalysis()
	default:
		content = m.viewDay()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	day := m.store.ActiveDay()
	label := day
	if t, err := models.ParseDayKey(day, m.loc); err == nil {
		label = t.Format("Mon " + constants.DateFormat)
	}
	if day == m.today() {
		label += " (today)"
	}

	parts := []string{
		headerStyle.Render(constants.AppName),
		dayStyle.Render(label),
		statusStyle.Render(m.clock.Format(constants.TimeFormat)),
	}
	if m.recorder.Active() {
		elapsed := m.clock.Sub(m.recorder.StartedAt()).Truncate(time.Second)
		parts = append(parts, recordingStyle.Render(fmt.Sprintf(" ● REC %s", elapsed)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewDay() string {
	face := dial.Render(m.layout, m.frameData())
	gap := lipgloss.NewStyle().Width(paneGap).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, face, gap, m.agenda.View())
}

func (m Model) viewStatus() string {
	switch {
	case m.status != "" && m.warn:
		return warningStyle.Render(m.status)
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	if err := m.store.SaveErr(); err != nil {
		return dangerStyle.Render("save failed: " + err.Error())
	}
	return ""
}

func (m Model) viewAnalysis() string {
	return analysisStyle.Render(m.report.View())
}

func (m Model) viewConfirmDelete() string {
	title := "this interval"
	if iv, ok := m.store.Get(m.deleteID); ok {
		title = fmt.Sprintf("%q (%s)", iv.DisplayTitle(), iv.Span())
	}
	return lipgloss.Place(m.width, max(m.height-headerLines-footerLines, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete "+title+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
