package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

var showCmd = &cobra.Command{
	Use:   "show ranked_resumes.csv",
	Short: "Render the charts of an exported ranking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := loadReport(args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), report, viper.GetInt("top"), false)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// loadReport rebuilds a report from a CSV written by rank --csv.
func loadReport(path string) (*models.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := services.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	names := make([]string, len(rows))
	scores := make([]float64, len(rows))
	for i, r := range rows {
		names[i] = r.Name
		scores[i] = r.Score
	}
	return services.NewReport(names, scores)
}
