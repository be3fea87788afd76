package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	synthesisStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("DevReports Explorer"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Source: %s\n", a.source))
	b.WriteString(a.topicInput.View())
	b.WriteString("\n\n")

	switch {
	case a.result == nil:
		b.WriteString(a.renderIntro())
	case a.result.Page.Results == 0:
		b.WriteString(fmt.Sprintf("No paragraphs found for the topic '%s'. Please try a different topic.\n", a.result.Topic))
	default:
		b.WriteString(a.renderResults())
	}

	if a.modal == modalSourcePicker {
		b.WriteString("\n\n")
		b.WriteString(a.renderSourcePicker())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(a.footerHints()))
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(a.status))
	}
	return b.String()
}

func (a *App) renderIntro() string {
	if a.overview != nil {
		return fmt.Sprintf(
			"Explore topics of interest in %d results across %d organisations.\nEnter a topic of interest to begin your search.\n",
			a.overview.Paragraphs, a.overview.Organizations,
		)
	}
	return "Enter a topic of interest to begin your search.\n"
}

func (a *App) renderResults() string {
	var b strings.Builder
	for i, row := range a.rows {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}

		synth := row.synthesis
		switch {
		case row.pending:
			synth = a.spin.View() + " synthesizing..."
		case row.synthErr != "":
			synth = row.synthesis + "  " + errStyle.Render("("+row.synthErr+")")
		default:
			synth = synthesisStyle.Render(synth)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, synth))
		b.WriteString("  " + metaStyle.Render(row.result.Reference) + "\n")
		if row.expanded {
			b.WriteString(a.wrapParagraph(row.result.Paragraph.Text, row.result.Reference))
		}
		b.WriteString("\n")
	}

	pg := a.result.Page
	b.WriteString(fmt.Sprintf("Page %d of %d — Showing %d to %d of %d results.\n",
		pg.Number, pg.Total, pg.ShowingFrom(), pg.ShowingTo(), pg.Results))
	return b.String()
}

func (a *App) wrapParagraph(text, reference string) string {
	body := fmt.Sprintf("%s (%s)", text, reference)
	width := a.width - 4
	if width < 20 {
		width = 76
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(body)
	var b strings.Builder
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

func (a *App) renderSourcePicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Data Source"))
	b.WriteString("\n")
	for i, src := range a.sources {
		marker := " "
		if i == a.sourceCursor {
			marker = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, src))
	}
	b.WriteString("[enter] Select  [esc] Cancel")
	return b.String()
}

func (a *App) footerHints() string {
	if a.modal != modalNone {
		return ""
	}
	if a.topicInput.Focused() {
		return "[enter] Search  [esc] Browse results  [ctrl+c] Quit"
	}
	return "[/] Edit topic  [s] Source  [←/→] Page  [↑/↓] Select  [enter] View source  [a] Retry synthesis  [q] Quit"
}
