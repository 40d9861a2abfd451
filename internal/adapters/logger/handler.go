package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/ccdrive/internal/ui/output"
	"go.trai.ch/ccdrive/internal/ui/style"
)

// Attribute keys of a failed tool invocation. The pretty handler lays them
// out below the message instead of appending them as key=value pairs.
const (
	AttrStep     = "step"
	AttrArgv     = "argv"
	AttrExitCode = "exit_code"
	AttrSource   = "source"
	AttrOutput   = "output"
)

// toolKeys lists the tool attributes in rendering order, step excluded.
var toolKeys = []string{AttrExitCode, AttrSource, AttrOutput}

// liftedKeys lists every tool attribute in the order the logger passes them on.
var liftedKeys = append([]string{AttrStep, AttrArgv}, toolKeys...)

var toolLabels = map[string]string{
	AttrExitCode: "exit code:",
	AttrSource:   "source:",
	AttrOutput:   "output:",
}

// PrettyHandler is a slog.Handler for terminals. The step of a failure heads
// the message and the command line that failed is printed on its own.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	return newPrettyHandler(output.New(w), opts)
}

func newPrettyHandler(out *termenv.Output, opts *slog.HandlerOptions) *PrettyHandler {
	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   out,
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record, followed by the tool block when one is attached.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	tool := map[string]string{}
	var extra []string
	collect := func(attr slog.Attr) {
		if h.group == "" && isToolKey(attr.Key) {
			tool[attr.Key] = attr.Value.String()
			return
		}
		extra = append(extra, formatAttr(h.group, attr))
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		collect(attr)
		return true
	})

	msg := r.Message
	if step := tool[AttrStep]; step != "" {
		msg = "[" + step + "] " + msg
	}

	var color termenv.Color
	switch r.Level {
	case slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		msg = style.Cross + " " + msg
		color = termenv.RGBColor(string(style.Red))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	if len(extra) > 0 {
		msg += " " + strings.Join(extra, " ")
	}

	var b strings.Builder
	b.WriteString(h.out.String(msg).Foreground(color).String())
	b.WriteString("\n")
	b.WriteString(h.toolBlock(tool))

	_, err := h.out.WriteString(b.String())
	return err
}

// toolBlock renders the failed command line and its facts, or nothing.
func (h *PrettyHandler) toolBlock(tool map[string]string) string {
	var lines []string
	if argv := tool[AttrArgv]; argv != "" {
		lines = append(lines, h.out.String("  $ "+argv).Bold().String())
	}
	for _, key := range toolKeys {
		if v, ok := tool[key]; ok {
			line := fmt.Sprintf("  %-10s %s", toolLabels[key], v)
			lines = append(lines, h.out.String(line).Foreground(termenv.RGBColor(string(style.Slate))).String())
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n") + "\n"
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
// Grouped attributes are never treated as tool attributes.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

func isToolKey(key string) bool {
	_, ok := toolLabels[key]
	return ok || key == AttrStep || key == AttrArgv
}

// formatAttr formats a single attribute for output.
// If a group is set, the key is prefixed with the group name.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
