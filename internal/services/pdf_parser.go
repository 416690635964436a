package services

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractReader(r io.ReaderAt, size int64) (string, error)
	ExtractFile(filePath string) (string, error)
	ExtractTextWithMetaData(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

// pageSource is the slice of a parsed document the extractor needs.
// Pages are numbered from 1.
type pageSource interface {
	NumPage() int
	PageText(num int) (string, error)
}

type pdfPages struct {
	reader *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.reader.NumPage()
}

func (p pdfPages) PageText(num int) (string, error) {
	page := p.reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

type pdfParserService struct {
	log *zap.Logger
}

func NewPDFParserService(log *zap.Logger) PDFParserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &pdfParserService{log: log}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	return p.ExtractReader(bytes.NewReader(data), int64(len(data)))
}

// ExtractReader implements PDFParserService.
func (p *pdfParserService) ExtractReader(r io.ReaderAt, size int64) (string, error) {
	content, err := p.extract(r, size)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractFile implements PDFParserService.
func (p *pdfParserService) ExtractFile(filePath string) (string, error) {
	content, err := p.ExtractTextWithMetaData(filePath)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractTextWithMetaData implements PDFParserService.
func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	content, err := p.extract(f, info.Size())
	if err != nil {
		if extErr, ok := err.(*ExtractionError); ok {
			extErr.Name = filepath.Base(filePath)
		}
		return nil, err
	}

	content.FilePath = filePath
	return content, nil
}

func (p *pdfParserService) extract(r io.ReaderAt, size int64) (content *PDFContent, err error) {
	// The pdf package reports malformed objects by panicking.
	defer func() {
		if rec := recover(); rec != nil {
			content = nil
			err = &ExtractionError{Err: fmt.Errorf("malformed PDF: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	text, pages := p.concatPages(pdfPages{reader: reader})
	return &PDFContent{Text: text, PageCount: pages}, nil
}

// concatPages joins page text in page order without separators. Pages that
// yield no text contribute nothing.
func (p *pdfParserService) concatPages(src pageSource) (string, int) {
	var textBuilder strings.Builder
	totalPage := src.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		text, err := src.PageText(pageIndex)
		if err != nil {
			p.log.Debug("page text unavailable", zap.Int("page", pageIndex), zap.Error(err))
			continue
		}
		textBuilder.WriteString(text)
	}

	return textBuilder.String(), totalPage
}
