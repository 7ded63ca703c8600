// Package textextract turns stored documents (PDF or plain text) into the
// normalized text the extract package parses.
package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

const (
	MethodPlain     = "plain"
	MethodPDFToText = "pdftotext"
	MethodPDFNative = "pdf-native"
)

// ErrNoText is returned when a document yields no readable text, e.g. a
// scanned PDF without a text layer.
var ErrNoText = common.NewAppError("NO_TEXT", "document contains no extractable text", common.ErrInvalidInput)

type Config struct {
	PDFToText string // binary name or absolute path; empty disables the external tool
	MaxPages  int    // 0 = no limit
}

type Result struct {
	Text     string
	Pages    int
	Format   string // constants.PDF | constants.TXT
	Method   string
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner replaces the command runner; used by tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractFile reads path and extracts its text.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return e.extract(ctx, path, path, data)
}

// ExtractBytes extracts text from an in-memory document; name supplies the
// extension. PDFs are spooled to a temp file when the external tool is used.
func (e *Extractor) ExtractBytes(ctx context.Context, name string, data []byte) (Result, error) {
	return e.extract(ctx, name, "", data)
}

func (e *Extractor) extract(ctx context.Context, name, path string, data []byte) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(name))
	e.logger.Debug("text extraction start", "name", name, "ext", ext, "bytes", len(data))

	var (
		res Result
		err error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.TXT:
		res, err = e.extractPlain(data)
	case constants.PDF:
		res, err = e.extractPDF(ctx, path, data)
	default:
		return Result{}, common.NewAppError("UNSUPPORTED_FORMAT", fmt.Sprintf("unsupported extension %q", ext), common.ErrInvalidInput)
	}
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Warn("text extraction failed", "name", name, "error", err)
		return res, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return res, ErrNoText
	}
	e.logger.Debug("text extraction ok", "name", name, "method", res.Method, "pages", res.Pages, "chars", len(res.Text), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

func (e *Extractor) extractPlain(data []byte) (Result, error) {
	if !utf8.Valid(data) {
		return Result{Format: constants.TXT}, common.NewAppError("INVALID_ENCODING", "text file is not valid UTF-8", common.ErrInvalidInput)
	}
	return Result{
		Text:   Normalize(string(data)),
		Pages:  1,
		Format: constants.TXT,
		Method: MethodPlain,
	}, nil
}

// extractPDF prefers pdftotext -layout, which keeps column gaps, and falls
// back to the in-process reader when the tool is missing, fails, or returns
// nothing.
func (e *Extractor) extractPDF(ctx context.Context, path string, data []byte) (Result, error) {
	res := Result{Format: constants.PDF}

	if e.cfg.PDFToText != "" {
		text, pages, err := e.pdfToText(ctx, path, data)
		switch {
		case err != nil:
			res.Warnings = append(res.Warnings, fmt.Sprintf("pdftotext: %v", err))
		case strings.TrimSpace(text) == "":
			res.Warnings = append(res.Warnings, "pdftotext returned no text")
		default:
			res.Text, res.Pages, res.Method = Normalize(text), pages, MethodPDFToText
			return res, nil
		}
	}

	text, pages, err := readPDF(data, e.cfg.MaxPages)
	if err != nil {
		return res, common.NewAppError("PDF_READ", "cannot read PDF", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	res.Text, res.Pages, res.Method = Normalize(text), pages, MethodPDFNative
	return res, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string, data []byte) (string, int, error) {
	if path == "" {
		f, err := os.CreateTemp("", "parts-*.pdf")
		if err != nil {
			return "", 0, err
		}
		defer func() { _ = os.Remove(f.Name()) }()
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", 0, err
		}
		if err := f.Close(); err != nil {
			return "", 0, err
		}
		path = f.Name()
	}

	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.PDFToText, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", 0, fmt.Errorf("%w: %s", err, truncate(msg, 512))
		}
		return "", 0, err
	}
	text := string(out)
	// pages are separated by form feeds; the last page ends with one
	pages := strings.Count(strings.TrimRight(text, "\n"), "\f")
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "\f") {
		pages++
	}
	return text, pages, nil
}
