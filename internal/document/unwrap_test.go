package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "joins wrapped sentence",
			in:   "Built a data platform that served\nfive product teams.",
			want: "Built a data platform that served five product teams.",
		},
		{
			name: "bullet absorbs continuation even after period",
			in:   "• Led migration to Kubernetes.\nCut costs by 30%",
			want: "• Led migration to Kubernetes. Cut costs by 30%",
		},
		{
			name: "new bullet starts new unit",
			in:   "• First item\n• Second item",
			want: "• First item\n• Second item",
		},
		{
			name: "terminal punctuation closes unit",
			in:   "Summary line one.\nnext paragraph",
			want: "Summary line one.\nnext paragraph",
		},
		{
			name: "section header starts unit",
			in:   "Some text without period\nEXPERIENCE\nAcme Corp | Jan 2020 - Present",
			want: "Some text without period\nEXPERIENCE\nAcme Corp | Jan 2020 - Present",
		},
		{
			name: "location line starts unit",
			in:   "jane@example.com\nAustin, TX",
			want: "jane@example.com\nAustin, TX",
		},
		{
			name: "job title starts unit",
			in:   "Acme Corp\nSenior Software Engineer",
			want: "Acme Corp\nSenior Software Engineer",
		},
		{
			name: "numbered item starts unit",
			in:   "Steps\n1. Do the thing",
			want: "Steps\n1. Do the thing",
		},
		{
			name: "blank line flushes",
			in:   "first part\n\nsecond part",
			want: "first part\nsecond part",
		},
		{
			name: "empty input",
			in:   "\n\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnwrapLines(tt.in))
		})
	}
}
