package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidBinding is returned when a binding spec cannot be parsed.
var ErrInvalidBinding = errors.New("invalid key binding")

// Binding is a single key chord an action can be bound to.
// Specs use Vim-ish notation: "Enter", "Esc", "q", "C-q", "A-Left".
type Binding struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// ParseBinding parses a chord spec into a Binding.
func ParseBinding(spec string) (Binding, error) {
	if spec == "" {
		return Binding{}, fmt.Errorf("%w: empty spec", ErrInvalidBinding)
	}

	var b Binding
	rest := spec
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C', 'c':
			b.Modifiers = b.Modifiers.With(ModCtrl)
		case 'A', 'a', 'M', 'm':
			b.Modifiers = b.Modifiers.With(ModAlt)
		case 'S', 's':
			b.Modifiers = b.Modifiers.With(ModShift)
		default:
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q",
				ErrInvalidBinding, rest[0], spec)
		}
		rest = rest[2:]
	}

	if k, ok := keyNames[strings.ToLower(rest)]; ok {
		b.Key = k
		return b, nil
	}

	r, size := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError || size != len(rest) {
		return Binding{}, fmt.Errorf("%w: unknown key %q in %q",
			ErrInvalidBinding, rest, spec)
	}
	b.Key = KeyRune
	b.Rune = r
	return b, nil
}

// MustParseBinding parses a chord spec and panics on error.
// For use with known-good literals such as package defaults.
func MustParseBinding(spec string) Binding {
	b, err := ParseBinding(spec)
	if err != nil {
		panic(err)
	}
	return b
}

// Matches returns true if the event is this chord.
func (b Binding) Matches(e Event) bool {
	return b.Key == e.Key && b.Rune == e.Rune && b.Modifiers == e.Modifiers
}

// String returns the canonical spec for the binding.
func (b Binding) String() string {
	return Event{Key: b.Key, Rune: b.Rune, Modifiers: b.Modifiers}.String()
}
