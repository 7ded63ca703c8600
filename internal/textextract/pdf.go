package textextract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const columnGap = "  "

// readPDF extracts text in-process, one line per text row.
func readPDF(data []byte, maxPages int) (string, int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}

	total := r.NumPage()
	if maxPages > 0 && total > maxPages {
		total = maxPages
	}

	var b strings.Builder
	pages := 0
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", pages, fmt.Errorf("page %d: %w", i, err)
		}
		if pages > 0 {
			b.WriteString("\f")
		}
		pages++
		for _, row := range rows {
			line := joinRow(row.Content)
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), pages, nil
}

// joinRow rebuilds one text row from its runs. Runs sharing an origin are
// pieces of one shown string (TJ elements, consecutive Tj) and are glued back
// together; empty runs mark a Td move and become a word space. A run placed at
// a new origin starts a new column.
func joinRow(runs pdf.TextHorizontal) string {
	var (
		b       strings.Builder
		lastX   float64
		space   bool
		started bool
	)
	for _, run := range runs {
		s := strings.TrimSpace(run.S)
		if s == "" {
			if started {
				space = true
			}
			continue
		}
		if started {
			switch {
			case run.X != lastX:
				b.WriteString(columnGap)
			case space || startsWithSpace(run.S):
				b.WriteByte(' ')
			}
		}
		b.WriteString(s)
		started = true
		lastX = run.X
		space = endsWithSpace(run.S)
	}
	return b.String()
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}
