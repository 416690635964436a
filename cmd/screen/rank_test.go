package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/services"
	"alfredoptarigan/resume-ranker/internal/testutil"
)

const jobDescription = "Senior Go engineer to build backend services with PostgreSQL, Kubernetes and gRPC."

func writeResumes(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	resumes := []struct {
		name  string
		pages []string
	}{
		{"chef.pdf", []string{"Chef restaurant manager"}},
		{"gopher.pdf", []string{"Go engineer backend services", "Kubernetes PostgreSQL gRPC"}},
		{"pythonista.pdf", []string{"Python engineer"}},
	}

	paths := make([]string, len(resumes))
	for i, r := range resumes {
		paths[i] = filepath.Join(dir, r.name)
		require.NoError(t, os.WriteFile(paths[i], testutil.BuildPDF(r.pages), 0o644))
	}
	return paths
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"rank", "show", "version"} {
		assert.True(t, names[want], "%s command not registered", want)
	}

	for _, flag := range []string{"job", "job-text", "csv", "xlsx", "top", "no-charts"} {
		assert.NotNil(t, rankCmd.Flags().Lookup(flag), "rank is missing --%s", flag)
	}
}

func TestRunRank(t *testing.T) {
	paths := writeResumes(t)
	outDir := t.TempDir()

	opts := rankOptions{
		JobText:  jobDescription,
		CSVPath:  filepath.Join(outDir, services.CSVFilename),
		XLSXPath: filepath.Join(outDir, services.XLSXFilename),
		Top:      2,
	}

	var out bytes.Buffer
	err := runRank(context.Background(), opts, paths, nil, &out, zap.NewNop())
	require.NoError(t, err)

	text := out.String()
	gopher := strings.Index(text, "gopher.pdf")
	pythonista := strings.Index(text, "pythonista.pdf")
	chef := strings.Index(text, "chef.pdf")
	require.True(t, gopher >= 0 && pythonista >= 0 && chef >= 0, text)
	assert.True(t, gopher < pythonista && pythonista < chef, "ranking out of order:\n%s", text)
	assert.Contains(t, text, "Top 2")

	report, err := loadReport(opts.CSVPath)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "gopher.pdf", report.Results[0].Name)
	assert.Equal(t, 0.0, report.Results[2].Score)

	info, err := os.Stat(opts.XLSXPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunRankWithoutCharts(t *testing.T) {
	var out bytes.Buffer
	err := runRank(context.Background(), rankOptions{JobText: jobDescription, NoCharts: true}, writeResumes(t), nil, &out, zap.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Match %")
	assert.NotContains(t, out.String(), "Score Share")
}

func TestRunRankReadsJobFromStdin(t *testing.T) {
	var out bytes.Buffer
	err := runRank(context.Background(), rankOptions{Job: "-"}, writeResumes(t), strings.NewReader(jobDescription), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "gopher.pdf")
}

func TestRunRankErrors(t *testing.T) {
	paths := writeResumes(t)

	err := runRank(context.Background(), rankOptions{}, paths, nil, &bytes.Buffer{}, zap.NewNop())
	assert.True(t, errors.Is(err, services.ErrMissingInput))

	err = runRank(context.Background(), rankOptions{Job: filepath.Join(t.TempDir(), "missing.txt")}, paths, nil, &bytes.Buffer{}, zap.NewNop())
	assert.Error(t, err)

	broken := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a pdf"), 0o644))

	err = runRank(context.Background(), rankOptions{JobText: jobDescription}, append(paths, broken), nil, &bytes.Buffer{}, zap.NewNop())
	var extErr *services.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "scan.pdf", extErr.Name)
}

func TestLoadReportRejectsForeignCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,value\na,1\n"), 0o644))

	_, err := loadReport(path)
	assert.Error(t, err)
}

func TestLoadRankOptions(t *testing.T) {
	opts, err := loadRankOptions(map[string]any{
		"job":       "job.txt",
		"top":       "3",
		"no-charts": "true",
		"csv":       "out.csv",
		"debug":     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "job.txt", opts.Job)
	assert.Equal(t, 3, opts.Top)
	assert.True(t, opts.NoCharts)
	assert.Equal(t, "out.csv", opts.CSVPath)

	opts, err = loadRankOptions(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, services.DefaultTopN, opts.Top)

	_, err = loadRankOptions(map[string]any{"top": "many"})
	assert.Error(t, err)
}
