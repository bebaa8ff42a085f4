package markdown_test

import (
	"testing"

	"zenith/internal/platform/markdown"
)

func TestPlainStripsBoldAndNormalizesBullets(t *testing.T) {
	t.Parallel()
	in := "Focus on **two** things:\n* finish the **report**\n  - call Ada\nunfinished **bold"
	want := "Focus on two things:\n• finish the report\n  • call Ada\nunfinished **bold"
	if got := markdown.Plain(in); got != want {
		t.Fatalf("unexpected render:\n%s\nwant:\n%s", got, want)
	}
}
