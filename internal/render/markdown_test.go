package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains []string
		excludes []string
	}{
		{
			name:     "heading",
			content:  "# Root Article",
			contains: []string{`<h1 id="root-article">Root Article</h1>`},
		},
		{
			name:     "emphasis",
			content:  "some *text*",
			contains: []string{"<p>some <em>text</em></p>"},
		},
		{
			name:     "table",
			content:  "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "script is removed",
			content:  "hello <script>alert(1)</script>",
			contains: []string{"hello"},
			excludes: []string{"<script>", "alert(1)</script>"},
		},
		{
			name:     "empty",
			content:  "",
			excludes: []string{"<p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := Markdown(tt.content)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, html, s)
			}
		})
	}
}
