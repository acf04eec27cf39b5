package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is a bare style-file symbol such as :atx. It is kept distinct from
// quoted strings so that `style: :atx` and `style: 'atx'` stay distinguishable.
type Symbol string

// String returns the symbol name without the leading colon.
func (s Symbol) String() string {
	return string(s)
}

// FormatValue renders a parameter value in style-file syntax.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		out := strconv.FormatFloat(typed, 'g', -1, 64)
		if !strings.ContainsAny(out, ".eEn") {
			out += ".0"
		}
		return out
	case Symbol:
		return ":" + string(typed)
	case string:
		return quoteString(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, FormatValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return quoteString(fmt.Sprint(typed))
	}
}

// Plain converts a value into plain Go data for serializers: symbols become
// strings and lists are copied recursively.
func Plain(value any) any {
	switch typed := value.(type) {
	case Symbol:
		return string(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Plain(item)
		}
		return out
	default:
		return value
	}
}

// quoteString single-quotes s, escaping backslashes and quotes.
func quoteString(s string) string {
	var builder strings.Builder
	builder.WriteByte('\'')
	for _, r := range s {
		if r == '\\' || r == '\'' {
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	builder.WriteByte('\'')
	return builder.String()
}

// cloneValue deep-copies list values so callers cannot mutate loader state.
func cloneValue(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = cloneValue(item)
	}
	return out
}

// isIdentifier reports whether s can be written as a bare label or symbol.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r) || (i == 0 && r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
