package alpha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "single line",
			raw:  "42",
			want: []string{"42"},
		},
		{
			name: "escaped newlines",
			raw:  `A | B\n1 | 2`,
			want: []string{"A | B\n1 | 2"},
		},
		{
			name: "escaped possessive",
			raw:  `Euler\'s number`,
			want: []string{"Euler's number"},
		},
		{
			name: "paragraphs",
			raw:  `first\n\n\nsecond\nthird`,
			want: []string{"first", "second\nthird"},
		},
		{
			name: "annotation lines",
			raw:  `(data not available)\nA | B\n(in kilograms)\n1 | 2`,
			want: []string{"A | B\n1 | 2"},
		},
		{
			name: "annotation only paragraph",
			raw:  `value\n\n(approximate)`,
			want: []string{"value"},
		},
		{
			name: "annotation with separator",
			raw:  `(a | b)\nA | B\n1 | 2`,
			want: []string{"A | B\n1 | 2"},
		},
		{
			name: "leading and trailing blank lines",
			raw:  "\nvalue\n",
			want: []string{"value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Blocks(tt.raw))
		})
	}
}
