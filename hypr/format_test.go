package hypr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWorkspace(t *testing.T) {
	tests := []struct {
		name string
		id   int
		want string
	}{
		{"web", 2, "Workspace web"},
		{"", 3, "Workspace 3"},
		{"special:scratch", -98, "Special: scratch"},
		{"special:", -98, "Special -98"},
		{"special", -99, "Special -99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWorkspace(tt.name, tt.id))
	}
}

func TestTruncateTitleShortPassesThrough(t *testing.T) {
	assert.Equal(t, "short title", TruncateTitle("short title", 64))
}

func TestTruncateTitleLong(t *testing.T) {
	long := ""
	for i := 0; i < 10; i++ {
		long += "abcdefghij"
	}

	got := TruncateTitle(long, 20)

	runes := []rune(got)
	assert.Len(t, runes, 21, "9 leading runes, ellipsis, 11 trailing runes")
	assert.Equal(t, "abcdefghi", string(runes[:9]))
	assert.Equal(t, '…', runes[9])
	assert.Equal(t, "jabcdefghij", string(runes[10:]))
}

func TestTruncateTitleMultibyte(t *testing.T) {
	title := "ありがとうございましたありがとうございました"

	got := TruncateTitle(title, 10)

	runes := []rune(got)
	assert.Len(t, runes, 11)
	assert.Equal(t, '…', runes[4])
}
