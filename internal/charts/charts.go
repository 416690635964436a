// Package charts renders ranking chart series for the terminal.
package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"alfredoptarigan/resume-ranker/internal/models"
)

const (
	barWidth        = 40
	shareWidth      = 50
	labelWidth      = 24
	sparklineWidth  = 30
	sparklineHeight = 4
)

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	sparklineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	// low to high match, used by the heatmap and share strip
	ramp = []lipgloss.Color{"196", "202", "208", "214", "220", "226", "190", "154", "118", "46"}
)

const noData = "no data"

// Dashboard renders every chart of a report, one section after another.
func Dashboard(set models.ChartSet) string {
	sections := []string{
		section("Match Scores", Bar(set.Bar)),
		section("Score Share", Pie(set.Pie)),
		section("Heatmap", Heatmap(set.Heatmap)),
		section(fmt.Sprintf("Top %d", len(set.Top)), Top(set.Top)),
		section("Score Profile", Profile(set.Bar.Values)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Bar draws one horizontal bar per résumé, scaled to 100%.
func Bar(chart models.BarChart) string {
	if len(chart.Labels) == 0 {
		return dimStyle.Render(noData)
	}

	bar := newBar("#ff0000", "#00ff00")
	lines := make([]string, len(chart.Labels))
	for i, label := range chart.Labels {
		lines[i] = labelStyle.Render(pad(label)) + " " +
			bar.ViewAs(clamp(chart.Values[i]/100)) + " " +
			valueStyle.Render(chart.Text[i])
	}
	return strings.Join(lines, "\n")
}

// Pie draws each résumé's share of the summed scores as a segmented strip
// followed by a legend.
func Pie(chart models.PieChart) string {
	if len(chart.Labels) == 0 {
		return dimStyle.Render(noData)
	}

	var total float64
	for _, p := range chart.Proportions {
		total += p
	}
	if total == 0 {
		return dimStyle.Render("all scores are zero")
	}

	var strip strings.Builder
	legend := make([]string, len(chart.Labels))
	used := 0
	for i, label := range chart.Labels {
		style := lipgloss.NewStyle().Foreground(ramp[(len(ramp)-1-i%len(ramp))])

		cells := int(math.Round(chart.Proportions[i] * shareWidth))
		if i == len(chart.Labels)-1 {
			cells = max(shareWidth-used, 0)
		}
		cells = min(cells, shareWidth-used)
		used += cells
		strip.WriteString(style.Render(strings.Repeat("█", cells)))

		legend[i] = style.Render("■") + " " + labelStyle.Render(pad(label)) + " " +
			valueStyle.Render(fmt.Sprintf("%.1f%%", chart.Proportions[i]*100))
	}

	return strip.String() + "\n" + strings.Join(legend, "\n")
}

// Heatmap draws a single row of cells coloured by match percentage.
func Heatmap(chart models.HeatmapChart) string {
	if len(chart.X) == 0 || len(chart.Z) == 0 {
		return dimStyle.Render(noData)
	}

	rows := make([]string, 0, len(chart.Z))
	for _, z := range chart.Z {
		cells := make([]string, len(z))
		for i, v := range z {
			cells[i] = heatStyle(v).Render(fmt.Sprintf(" %5.1f ", v))
		}
		rows = append(rows, strings.Join(cells, ""))
	}

	names := make([]string, len(chart.X))
	for i, x := range chart.X {
		names[i] = fmt.Sprintf("%2d. %s", i+1, x)
	}

	return strings.Join(rows, "\n") + "\n" + dimStyle.Render(strings.Join(names, "\n"))
}

// Top draws the best résumés with bars proportional to their percentage.
func Top(entries []models.TopEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render(noData)
	}

	bar := newBar("#00ffff", "#ff00ff")
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = valueStyle.Render(fmt.Sprintf("#%d ", i+1)) +
			labelStyle.Render(pad(e.Name)) + " " +
			bar.ViewAs(clamp(e.BarWidth/100)) + " " +
			valueStyle.Render(fmt.Sprintf("%.2f%%", e.Percent))
	}
	return strings.Join(lines, "\n")
}

// Profile draws the scores in rank order as a sparkline.
func Profile(values []float64) string {
	if len(values) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, noData))
	}

	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range values {
		spark.Push(v)
	}
	spark.Draw()

	return sparklineStyle.Render(spark.View())
}

func section(title, body string) string {
	return sectionStyle.Render("┃ "+title) + "\n" + body + "\n"
}

func newBar(from, to string) progress.Model {
	return progress.New(
		progress.WithGradient(from, to),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
}

func heatStyle(percent float64) lipgloss.Style {
	idx := int(clamp(percent/100) * float64(len(ramp)-1))
	return lipgloss.NewStyle().
		Background(ramp[idx]).
		Foreground(lipgloss.Color("0"))
}

// pad truncates or right-pads a label to the label column.
func pad(label string) string {
	runes := []rune(label)
	if len(runes) > labelWidth {
		label = string(runes[:labelWidth-3]) + "..."
	}
	return lipgloss.NewStyle().Width(labelWidth).Render(label)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
