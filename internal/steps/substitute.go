package steps

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Substitute replaces every {symbol} placeholder in text with the bound value.
// Unresolved placeholders stay verbatim; that is intentional for free text
// headed to the retrieval facade.
func Substitute(text string, vars map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		symbol := match[1 : len(match)-1]
		value, found := vars[symbol]
		if !found {
			log.Warn().Msgf("unresolved placeholder: %s", match)
			return match
		}
		return FormatValue(value)
	})
}

// Reference reports whether value is exactly one {symbol} placeholder and
// returns that symbol.
func Reference(value any) (string, bool) {
	s, isString := value.(string)
	if !isString {
		return "", false
	}
	s = strings.TrimSpace(s)
	if len(s) < 3 || !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if strings.ContainsAny(inner, "{}") {
		return "", false
	}
	return inner, true
}

// FormatValue renders a bound value for text substitution. Floats keep a
// decimal point so units read naturally (3200.0 MW, not 3200 MW).
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
