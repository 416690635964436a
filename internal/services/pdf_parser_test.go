package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/testutil"
)

type fakePages struct {
	pages []string
	errs  map[int]error
}

func (f fakePages) NumPage() int {
	return len(f.pages)
}

func (f fakePages) PageText(num int) (string, error) {
	if err := f.errs[num]; err != nil {
		return "", err
	}
	return f.pages[num-1], nil
}

func newTestParser() *pdfParserService {
	return &pdfParserService{log: zap.NewNop()}
}

func TestConcatPages(t *testing.T) {
	tests := []struct {
		name      string
		src       fakePages
		wantText  string
		wantPages int
	}{
		{
			name:      "three pages joined without separators",
			src:       fakePages{pages: []string{"A", "B", "C"}},
			wantText:  "ABC",
			wantPages: 3,
		},
		{
			name:      "no pages",
			src:       fakePages{},
			wantText:  "",
			wantPages: 0,
		},
		{
			name:      "empty page contributes nothing",
			src:       fakePages{pages: []string{"Go ", "", "engineer"}},
			wantText:  "Go engineer",
			wantPages: 3,
		},
		{
			name: "unreadable page contributes nothing",
			src: fakePages{
				pages: []string{"first", "second", "third"},
				errs:  map[int]error{2: errors.New("bad content stream")},
			},
			wantText:  "firstthird",
			wantPages: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, pages := newTestParser().concatPages(tt.src)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantPages, pages)
		})
	}
}

func TestExtractTextRejectsMalformedInput(t *testing.T) {
	parser := NewPDFParserService(nil)

	for _, input := range [][]byte{
		nil,
		[]byte("definitely not a pdf"),
		[]byte("%PDF-1.4\n" + strings.Repeat("x", 200)),
	} {
		_, err := parser.ExtractText(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExtraction), "expected ErrExtraction, got %v", err)

		var extErr *ExtractionError
		assert.True(t, errors.As(err, &extErr))
	}
}

func TestExtractTextFromGeneratedPDF(t *testing.T) {
	data := testutil.BuildPDF([]string{"Alpha golang", "Beta kubernetes", "Gamma"})

	text, err := NewPDFParserService(nil).ExtractText(data)
	require.NoError(t, err)

	alpha := strings.Index(text, "Alpha golang")
	beta := strings.Index(text, "Beta kubernetes")
	gamma := strings.Index(text, "Gamma")
	require.True(t, alpha >= 0 && beta >= 0 && gamma >= 0, "missing page text in %q", text)
	assert.True(t, alpha < beta && beta < gamma, "pages out of order in %q", text)
}

func TestExtractTextWithMetaData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(path, testutil.BuildPDF([]string{"One", "Two"}), 0o644))

	content, err := NewPDFParserService(nil).ExtractTextWithMetaData(path)
	require.NoError(t, err)
	assert.Equal(t, 2, content.PageCount)
	assert.Equal(t, path, content.FilePath)
	assert.Contains(t, content.Text, "One")

	bad := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	_, err = NewPDFParserService(nil).ExtractFile(bad)
	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "broken.pdf", extErr.Name)
}
