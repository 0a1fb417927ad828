// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	timeFormat        = "2006-01-02T15:04:05-0700"
	termTimeFormat    = "01-02|15:04:05.000"
	termMsgJust       = 40
	termCtxMaxPadding = 40
)

func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	msg := escapeMessage(r.Message)
	var color = ""
	if usecolor {
		switch r.Level {
		case LevelCrit:
			color = "\x1b[35m"
		case slog.LevelError:
			color = "\x1b[31m"
		case slog.LevelWarn:
			color = "\x1b[33m"
		case slog.LevelInfo:
			color = "\x1b[32m"
		case slog.LevelDebug:
			color = "\x1b[36m"
		case LevelTrace:
			color = "\x1b[34m"
		}
	}
	if color != "" {
		buf = append(buf, color...)
		buf = append(buf, LevelAlignedString(r.Level)...)
		buf = append(buf, "\x1b[0m"...)
	} else {
		buf = append(buf, LevelAlignedString(r.Level)...)
	}
	buf = append(buf, " ["...)
	buf = r.Time.AppendFormat(buf, termTimeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, msg...)

	// pad short messages so the key/value columns line up
	if (len(h.attrs)+r.NumAttrs()) > 0 && len(msg) < termMsgJust {
		buf = append(buf, strings.Repeat(" ", termMsgJust-len(msg))...)
	}

	for _, attr := range h.attrs {
		buf = appendAttr(buf, attr, color)
	}
	r.Attrs(func(attr slog.Attr) bool {
		buf = appendAttr(buf, attr, color)
		return true
	})
	return append(buf, '\n')
}

func appendAttr(buf []byte, attr slog.Attr, color string) []byte {
	buf = append(buf, ' ')
	if color != "" {
		buf = append(buf, color...)
		buf = appendEscapeString(buf, attr.Key)
		buf = append(buf, "\x1b[0m="...)
	} else {
		buf = appendEscapeString(buf, attr.Key)
		buf = append(buf, '=')
	}
	return appendValue(buf, attr.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendEscapeString(buf, v.String())
	case slog.KindInt64:
		return appendInt64(buf, v.Int64())
	case slog.KindUint64:
		return appendUint64(buf, v.Uint64(), false)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindTime:
		return v.Time().AppendFormat(buf, timeFormat)
	case slog.KindAny:
		s := formatAny(v.Any(), true)
		if len(s) > termCtxMaxPadding*4 {
			s = s[:termCtxMaxPadding*4] + "..."
		}
		return appendEscapeString(buf, s)
	}
	return appendEscapeString(buf, v.String())
}

// appendInt64 formats n with thousand separators.
func appendInt64(dst []byte, n int64) []byte {
	if n < 0 {
		return appendUint64(dst, uint64(-n), true)
	}
	return appendUint64(dst, uint64(n), false)
}

// appendUint64 formats n with thousand separators once it exceeds 99999.
func appendUint64(dst []byte, n uint64, neg bool) []byte {
	if n < 100000 {
		if neg {
			return strconv.AppendInt(dst, -int64(n), 10)
		}
		return strconv.AppendUint(dst, n, 10)
	}
	const maxLength = 26

	var (
		out   = make([]byte, maxLength)
		i     = maxLength - 1
		comma = 0
	)
	for ; n > 0; i-- {
		if comma == 3 {
			comma = 0
			out[i] = ','
		} else {
			comma++
			out[i] = '0' + byte(n%10)
			n /= 10
		}
	}
	if neg {
		out[i] = '-'
		i--
	}
	return append(dst, out[i+1:]...)
}

func appendEscapeString(dst []byte, s string) []byte {
	needsQuoting := false
	for _, r := range s {
		if r == '=' || r == '"' || r == ' ' || r == utf8.RuneError || r < ' ' {
			needsQuoting = true
			break
		}
	}
	if !needsQuoting {
		return append(dst, s...)
	}
	return strconv.AppendQuote(dst, s)
}

func escapeMessage(s string) string {
	if !strings.ContainsAny(s, "\r\n\x00") {
		return s
	}
	return strconv.Quote(s)
}
