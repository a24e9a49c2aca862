package bananagen

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const filenamePromptTemplate = `Suggest a short, descriptive filename for an image generated from the prompt below.
Use only lowercase letters, digits, underscores and hyphens, at most 50 characters, and no file extension.
Reply with the filename only.

Prompt: %s`

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FilenamePrompt returns the instruction sent to the text model to name the
// output of prompt.
func FilenamePrompt(prompt string) string {
	return fmt.Sprintf(filenamePromptTemplate, prompt)
}

// SanitizeFilename keeps ASCII letters, digits, underscores and hyphens and
// drops everything else, including quotes or backticks wrapped around the name.
// A trailing image extension is removed first so "cat.png" becomes "cat".
func SanitizeFilename(name string) string {
	name = strings.Trim(strings.TrimSpace(name), "`'\"")
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return unsafeFilenameChars.ReplaceAllString(name, "")
}
