package registry

import (
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/typedcli/internal/errors"
)

var (
	lower         = cases.Lower(language.Und)
	anonymousFunc = regexp.MustCompile(`^(func)?\d+$`)
)

// CommandName derives the CLI-facing token for a handler identifier.
// Word separators (underscores, whitespace and lower-to-upper case
// boundaries) become hyphens and the result is lower-cased.
func CommandName(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", errors.Registration("command identifier must not be empty")
	}

	runes := []rune(identifier)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '_' || unicode.IsSpace(r):
			b.WriteRune('-')
			continue
		case unicode.IsUpper(r) && i > 0 && wordBoundary(runes, i):
			b.WriteRune('-')
		}
		b.WriteRune(r)
	}

	name := lower.String(b.String())
	if strings.HasPrefix(name, "-") {
		return "", errors.Registrationf("command identifier %q must not start with a separator", identifier)
	}
	return name, nil
}

// wordBoundary reports whether the upper-case rune at i starts a new word:
// "checkHealth" splits before H, "HTTPServer" splits before S.
func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}

// IdentifierOf returns the declared identifier of a named Go function or
// method value. Anonymous functions have no identifier.
func IdentifierOf(fn any) (string, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", errors.Registrationf("cannot derive a command name from %T", fn)
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "", errors.Registration("cannot resolve handler function")
	}

	full := f.Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	id := full
	if i := strings.LastIndex(full, "."); i >= 0 {
		id = full[i+1:]
	}
	if id == "" || anonymousFunc.MatchString(id) {
		return "", errors.Registrationf("cannot derive a command name from anonymous function %s", full)
	}
	return id, nil
}
