package textextract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

type fakeRunner struct {
	out   string
	errb  string
	err   error
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return []byte(f.out), []byte(f.errb), f.err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestExtractFile_Text(t *testing.T) {
	p := writeFile(t, "po.TXT", "PO Number: PO-1-2\r\nPart#: A-1\tDescription: Widget\r\n")

	res, err := NewExtractor(Config{}, nil).ExtractFile(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, constants.TXT, res.Format)
	assert.Equal(t, MethodPlain, res.Method)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "PO Number: PO-1-2\nPart#: A-1  Description: Widget", res.Text)
}

func TestExtractFile_EmptyText(t *testing.T) {
	p := writeFile(t, "blank.txt", "  \n\n ")
	_, err := NewExtractor(Config{}, nil).ExtractFile(context.Background(), p)
	assert.ErrorIs(t, err, ErrNoText)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestExtractFile_UnsupportedExtension(t *testing.T) {
	p := writeFile(t, "photo.jpg", "xx")
	_, err := NewExtractor(Config{}, nil).ExtractFile(context.Background(), p)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).ExtractFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractBytes_InvalidUTF8(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).ExtractBytes(context.Background(), "x.txt", []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestExtractFile_PDFToText(t *testing.T) {
	p := writeFile(t, "po.pdf", "%PDF-1.4 stub")
	run := &fakeRunner{out: "PO Number: PO-9-9\n\fPart#: X-1    Qty: 2\n\f"}

	ext := NewExtractor(Config{PDFToText: "pdftotext", MaxPages: 3}, nil).WithRunner(run)
	res, err := ext.ExtractFile(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, MethodPDFToText, res.Method)
	assert.Equal(t, constants.PDF, res.Format)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "PO Number: PO-9-9\n\nPart#: X-1    Qty: 2", res.Text)

	require.Len(t, run.calls, 1)
	assert.Equal(t, []string{"pdftotext", "-layout", "-enc", "UTF-8", "-eol", "unix", "-l", "3", p, "-"}, run.calls[0])
}

func TestExtractBytes_PDFToTextSpoolsTempFile(t *testing.T) {
	run := &fakeRunner{out: "Part#: X-1"}
	ext := NewExtractor(Config{PDFToText: "pdftotext"}, nil).WithRunner(run)

	res, err := ext.ExtractBytes(context.Background(), "remote/po.pdf", []byte("%PDF-1.4 stub"))
	require.NoError(t, err)
	assert.Equal(t, "Part#: X-1", res.Text)

	require.Len(t, run.calls, 1)
	spooled := run.calls[0][len(run.calls[0])-2]
	assert.NotEqual(t, "remote/po.pdf", spooled)
	_, statErr := os.Stat(spooled)
	assert.True(t, os.IsNotExist(statErr), "temp file should be removed")
}

func TestExtractFile_PDFFallsBackToNativeReader(t *testing.T) {
	p := writeFile(t, "broken.pdf", "not really a pdf")
	run := &fakeRunner{err: errors.New("exit status 1"), errb: "Syntax Error"}

	ext := NewExtractor(Config{PDFToText: "pdftotext"}, nil).WithRunner(run)
	res, err := ext.ExtractFile(context.Background(), p)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Syntax Error")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...(truncated)", truncate("abcdef", 2))
}
