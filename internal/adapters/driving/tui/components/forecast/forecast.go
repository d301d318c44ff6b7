// Package forecast renders current conditions and the daily strip.
package forecast

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skycast/internal/core/domain"
)

// Panel displays a forecast bundle.
type Panel struct {
	styles *styles.Styles
	bundle *domain.ForecastBundle
	stale  bool
	width  int
}

// NewPanel creates a new forecast panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{
		styles: s,
		width:  80,
	}
}

// SetForecast replaces the displayed bundle.
func (p *Panel) SetForecast(bundle *domain.ForecastBundle, stale bool) {
	p.bundle = bundle
	p.stale = stale
}

// Forecast returns the displayed bundle.
func (p *Panel) Forecast() *domain.ForecastBundle {
	return p.bundle
}

// SetWidth sets the panel width.
func (p *Panel) SetWidth(width int) {
	p.width = width
}

// View renders the panel.
func (p *Panel) View() string {
	if p.bundle == nil {
		return p.styles.Muted.Render("No forecast yet")
	}

	sections := []string{
		p.renderHeader(),
		"",
		p.renderCurrent(),
		"",
		p.renderStats(),
		"",
		p.styles.Subtitle.Render("📅 Daily forecast"),
		p.renderDaily(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders "Name, Country" with a stale marker.
func (p *Panel) renderHeader() string {
	loc := p.bundle.Location
	header := p.styles.Title.Render(loc.Name + ",")
	if loc.Country != "" {
		header += p.styles.Muted.Render(" " + loc.Country)
	}
	if p.stale {
		header += p.styles.Warning.Render("  (outdated)")
	}
	return header
}

// renderCurrent renders the icon, temperature and condition.
func (p *Panel) renderCurrent() string {
	cur := p.bundle.Current
	temp := p.styles.Temperature.Render(FormatTemp(cur.TempC))
	return fmt.Sprintf("%s  %s  %s",
		styles.ConditionIcon(cur.ConditionText),
		temp,
		p.styles.Normal.Render(cur.ConditionText),
	)
}

// renderStats renders wind, humidity and today's sunrise.
func (p *Panel) renderStats() string {
	cur := p.bundle.Current
	stats := []string{
		fmt.Sprintf("💨 %gkm", cur.WindKph),
		fmt.Sprintf("💧 %d%%", cur.Humidity),
	}
	if today := p.bundle.Today(); today != nil && today.Astro.Sunrise != "" {
		stats = append(stats, "🌅 "+today.Astro.Sunrise)
	}
	return p.styles.Normal.Render(strings.Join(stats, "    "))
}

// renderDaily renders one card per forecast day, wrapping to the width.
func (p *Panel) renderDaily() string {
	if len(p.bundle.Daily) == 0 {
		return p.styles.Muted.Render("No daily forecast")
	}

	cardWidth := p.styles.DayCard.GetWidth() + p.styles.DayCard.GetMarginRight()
	perRow := len(p.bundle.Daily)
	if cardWidth > 0 && p.width > 0 {
		perRow = p.width / cardWidth
	}
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	var row []string
	for _, day := range p.bundle.Daily {
		row = append(row, p.renderDay(day))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderDay renders a single daily card.
func (p *Panel) renderDay(day domain.DailyForecast) string {
	name := day.Weekday()
	if name == "" {
		name = day.Date
	}
	return p.styles.DayCard.Render(strings.Join([]string{
		styles.ConditionIcon(day.ConditionText),
		name,
		FormatTemp(day.AvgTempC),
	}, "\n"))
}

// FormatTemp renders a Celsius temperature with a degree sign.
func FormatTemp(c float64) string {
	return fmt.Sprintf("%g°", c)
}
