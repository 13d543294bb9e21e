package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	testCases := []struct {
		name        string
		source      string
		contains    []string
		notContains []string
	}{
		{
			name:     "headings and emphasis",
			source:   "# Title\n\nSome *emphasis* here.",
			contains: []string{"<h1>Title</h1>", "<em>emphasis</em>"},
		},
		{
			name:     "gfm table",
			source:   "| a | b |\n| - | - |\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:        "script tags are stripped",
			source:      "hello <script>alert(1)</script> world",
			contains:    []string{"hello", "world"},
			notContains: []string{"<script>", "alert(1)"},
		},
		{
			name:        "event handlers are stripped",
			source:      `<img src="x.png" onerror="alert(1)">`,
			contains:    []string{"<img"},
			notContains: []string{"onerror"},
		},
		{
			name:        "javascript links are stripped",
			source:      "[click](javascript:alert(1))",
			contains:    []string{"click"},
			notContains: []string{"javascript:"},
		},
		{
			name:     "external links open in a new tab",
			source:   "[site](https://example.com)",
			contains: []string{`target="_blank"`, "noreferrer"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := renderMarkdown(tc.source)
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
			for _, not := range tc.notContains {
				assert.NotContains(t, out, not)
			}
		})
	}
}
