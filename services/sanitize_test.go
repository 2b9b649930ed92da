package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Lead counsel", "Lead counsel"},
		{"trims whitespace", "  Associate \n", "Associate"},
		{"strips tags", "<b>Second</b> chair", "Second chair"},
		{"drops scripts", "Paralegal<script>alert(1)</script>", "Paralegal"},
		{"keeps apostrophes", "O'Brien's review", "O'Brien's review"},
		{"keeps ampersands", "Smith & Jones", "Smith & Jones"},
		{"keeps comparisons", "fee < cap", "fee < cap"},
		{"entity encoded script", "Paralegal&lt;script&gt;alert(1)&lt;/script&gt;", "Paralegal"},
		{"entity encoded tags", "&lt;b&gt;Lead&lt;/b&gt; counsel", "Lead counsel"},
		{"double encoded script", "Paralegal&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;", "Paralegal"},
		{"numeric entities", "&#60;img src=x onerror=alert(1)&#62;Clerk", "Clerk"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeTextNeverReturnsMarkup(t *testing.T) {
	inputs := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&amp;amp;amp;amp;amp;amp;lt;script&amp;amp;amp;amp;amp;amp;gt;x",
		"<a href=\"javascript:alert(1)\">click</a>",
		"&#x3C;iframe src=x&#x3E;",
	}
	for _, in := range inputs {
		out := SanitizeText(in)
		assert.NotContains(t, out, "<script", in)
		assert.NotContains(t, out, "<iframe", in)
		assert.NotContains(t, out, "<a ", in)
	}
}
