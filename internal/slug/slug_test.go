package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello World", "hello-world"},
		{"diacritics", "Café & Niños", "cafe-ninos"},
		{"accent grave", "Où est la crème", "ou-est-la-creme"},
		{"punctuation runs", "Go!!! Rocks...really", "go-rocks-really"},
		{"leading trailing", "  --Hello--  ", "hello"},
		{"numbers", "Top 10 Tips (2024)", "top-10-tips-2024"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
		{"umlaut", "Über alles", "uber-alles"},
		{"unfoldable runes stripped", "naïve résumé", "na-ve-resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Café & Niños",
		"Hello World",
		"already-a-slug",
		"Top 10 Tips (2024)",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make must be idempotent for %q", in)
	}
}
