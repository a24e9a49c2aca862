package bananagen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sunset_beach", "sunset_beach"},
		{"  sunset-beach\n", "sunset-beach"},
		{"`sunset_beach`", "sunset_beach"},
		{"\"red fox\"", "redfox"},
		{"../../etc/passwd", "etcpasswd"},
		{"cat.png", "cat"},
		{"café_au_lait", "caf_au_lait"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestFilenamePrompt(t *testing.T) {
	p := FilenamePrompt("a cat in space")
	assert.True(t, strings.HasSuffix(p, "Prompt: a cat in space"))
}
