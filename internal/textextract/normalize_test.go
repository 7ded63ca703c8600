package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"keeps column gaps", "VALVE-1    Ball Valve    5", "VALVE-1    Ball Valve    5"},
		{"tabs become a gap", "A-1\tWidget\t\t2", "A-1  Widget  2"},
		{"trailing spaces", "a   \nb ", "a\nb"},
		{"blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"form feed", "page one\fpage two", "page one\n\npage two"},
		{"rulers", "Items\n-----------\nA-1\n====\n", "Items\n\nA-1"},
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}
