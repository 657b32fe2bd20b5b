package logging

import (
	"io"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

// New builds the root logger; components derive theirs with Named.
func New(level string, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "habitforge",
		Level:  lvl,
		Output: out,
	})
}
