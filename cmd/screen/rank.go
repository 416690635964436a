package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/charts"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

type rankOptions struct {
	Job      string `mapstructure:"job"`
	JobText  string `mapstructure:"job-text"`
	CSVPath  string `mapstructure:"csv"`
	XLSXPath string `mapstructure:"xlsx"`
	Top      int    `mapstructure:"top"`
	NoCharts bool   `mapstructure:"no-charts"`
}

var rankCmd = &cobra.Command{
	Use:   "rank [flags] resume.pdf...",
	Short: "Rank PDF resumes against a job description",
	Long: `Rank PDF resumes against a job description.

Examples:
  # Job description from a file
  screen rank --job job.txt alice.pdf bob.pdf

  # Job description from stdin, export the ranking
  cat job.txt | screen rank --job - --csv ranked_resumes.csv *.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadRankOptions(viper.AllSettings())
		if err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		return runRank(cmd.Context(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout(), log)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "job description file, or - for stdin")
	rankCmd.Flags().String("job-text", "", "job description given inline")
	rankCmd.Flags().String("csv", "", "write the ranking to this CSV file")
	rankCmd.Flags().String("xlsx", "", "write the ranking to this XLSX file")
	rankCmd.Flags().Int("top", services.DefaultTopN, "number of resumes in the top list")
	rankCmd.Flags().Bool("no-charts", false, "print the ranking table only")

	for _, name := range []string{"job", "job-text", "csv", "xlsx", "top", "no-charts"} {
		viper.BindPFlag(name, rankCmd.Flags().Lookup(name))
	}
}

// loadRankOptions decodes flag, env and config file settings. Values coming
// from the environment arrive as strings.
func loadRankOptions(settings map[string]any) (rankOptions, error) {
	opts := rankOptions{Top: services.DefaultTopN}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, err
	}
	if err := decoder.Decode(settings); err != nil {
		return opts, fmt.Errorf("decoding rank options: %w", err)
	}
	return opts, nil
}

func runRank(ctx context.Context, opts rankOptions, files []string, stdin io.Reader, out io.Writer, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	jobDescription, err := readJobDescription(opts, stdin)
	if err != nil {
		return err
	}

	uploads := make([]models.Upload, len(files))
	for i, path := range files {
		uploads[i] = models.Upload{
			Name:     filepath.Base(path),
			Filename: filepath.Base(path),
			FilePath: path,
		}
	}

	// Files are read in place, so the session store and upload storage stay unused.
	screening := services.NewScreeningService(
		repositories.NewSessionRepository(),
		nil,
		services.NewPDFParserService(log.Named("pdf")),
		services.NewRanker(services.NewTFIDFVectorizer(services.NewTokenizer()), log.Named("ranker")),
		0,
		log.Named("screening"),
	)

	report, err := screening.Screen(ctx, jobDescription, uploads)
	if err != nil {
		if errors.Is(err, services.ErrMissingInput) {
			log.Warn(err.Error())
		}
		return err
	}

	if err := render(out, report, opts.Top, opts.NoCharts); err != nil {
		return err
	}

	if opts.CSVPath != "" {
		if err := writeCSVFile(opts.CSVPath, report); err != nil {
			return err
		}
		log.Info("ranking written", zap.String("path", opts.CSVPath))
	}

	if opts.XLSXPath != "" {
		data, err := services.WriteXLSX(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.XLSXPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.XLSXPath, err)
		}
		log.Info("ranking written", zap.String("path", opts.XLSXPath))
	}

	return nil
}

func readJobDescription(opts rankOptions, stdin io.Reader) (string, error) {
	switch {
	case opts.JobText != "":
		return opts.JobText, nil
	case opts.Job == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading job description from stdin: %w", err)
		}
		return string(data), nil
	case opts.Job != "":
		data, err := os.ReadFile(opts.Job)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		return string(data), nil
	}
	return "", services.ErrMissingInput
}

func writeCSVFile(path string, report *models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := services.WriteCSV(f, report); err != nil {
		return err
	}
	return f.Close()
}

func render(out io.Writer, report *models.Report, top int, noCharts bool) error {
	var b strings.Builder
	b.WriteString(charts.Table(report.Results))
	b.WriteString("\n")

	if !noCharts {
		b.WriteString("\n")
		b.WriteString(charts.Dashboard(services.BuildCharts(report, top)))
	}

	_, err := io.WriteString(out, b.String())
	return err
}
