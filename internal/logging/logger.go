package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "uploadd"

// New создаёт логгер charmbracelet/log с заданным уровнем и форматом (text, json, logfmt).
// Неизвестный уровень трактуется как info, неизвестный формат — как text.
func New(w io.Writer, level, format string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Formatter:       formatter(format),
	})

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}

// Discard возвращает логгер, который ничего не пишет; удобно для тестов.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
