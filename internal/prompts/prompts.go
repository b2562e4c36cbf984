// Package prompts holds the role instruction files shipped with the
// binary. Each agent role loads its system prompt from here by name.
package prompts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed *.txt
var files embed.FS

// Load returns the instruction text for the named role file, e.g.
// "interpreter". The ".txt" suffix is implied.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name + ".txt")
	if err != nil {
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// MustLoad is Load for prompts shipped with the binary; a missing file is
// a build defect, not a runtime condition.
func MustLoad(name string) string {
	s, err := Load(name)
	if err != nil {
		panic(err)
	}
	return s
}
