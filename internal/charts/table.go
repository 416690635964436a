package charts

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"alfredoptarigan/resume-ranker/internal/models"
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("51")).
	Bold(true).
	Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders the ranking in report order.
func Table(results []models.ScoredResume) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			strconv.Itoa(r.Rank),
			r.Name,
			strconv.FormatFloat(r.Score, 'f', 4, 64),
			fmt.Sprintf("%.2f%%", r.Percent()),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Rank", "Resume", "Score", "Match %").
		Rows(rows...).
		String()
}
