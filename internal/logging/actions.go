package logging

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ActionsHandler formats records as workflow commands: debug, warn and
// error records get the matching "::level::" prefix, info records are
// printed plain. Attributes follow the message as key=value pairs.
type ActionsHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  string
	prefix string
}

var _ slog.Handler = (*ActionsHandler)(nil)

// NewActionsHandler returns a handler writing to w. opts may be nil.
func NewActionsHandler(w io.Writer, opts *slog.HandlerOptions) *ActionsHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &ActionsHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *ActionsHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *ActionsHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(r.Message)
	b.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})

	var line string

	switch {
	case r.Level >= slog.LevelError:
		line = "::error::" + escapeData(b.String())
	case r.Level >= slog.LevelWarn:
		line = "::warning::" + escapeData(b.String())
	case r.Level >= slog.LevelInfo:
		line = b.String()
	default:
		line = "::debug::" + escapeData(b.String())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, line+"\n")

	return err
}

func (h *ActionsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var b strings.Builder
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}

	h2 := *h
	h2.attrs = h.attrs + b.String()

	return &h2
}

func (h *ActionsHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := *h
	h2.prefix = h.prefix + name + "."

	return &h2
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()

		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}

		for _, ga := range group {
			appendAttr(b, p, ga)
		}

		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quote(a.Value.String()))
}

func quote(s string) string {
	if s == "" || slices.ContainsFunc([]rune(s), func(r rune) bool {
		return r == ' ' || r == '"' || r == '=' || r < 0x20
	}) {
		return strconv.Quote(s)
	}

	return s
}
