package emoji

import (
	"fmt"
	"strings"
)

// defaultPalette is the ordered set of generic symbols assigned by option
// position when no curated symbol applies.
var defaultPalette = []string{
	"🇦", "🇧", "🇨", "🇩", "🇪", "🇫", "🇬", "🇭", "🇮", "🇯",
}

// curated maps common canonical option words to their natural symbol,
// matched case-insensitively.
var curated = map[string]string{
	"yes":      "✅",
	"no":       "❌",
	"win":      "🏆",
	"lose":     "💀",
	"tie":      "🤝",
	"draw":     "🤝",
	"up":       "📈",
	"down":     "📉",
	"increase": "📈",
	"decrease": "📉",
	"over":     "⬆️",
	"under":    "⬇️",
}

// Codec maps option text to canonical signal symbols and back. It is
// stateless: Encode is called once at line creation and the resulting
// symbols are persisted alongside the line, so the mapping for a given
// line never changes after creation.
type Codec struct{}

// New creates a new Codec
func New() *Codec {
	return &Codec{}
}

// Encode assigns one symbol per option, index-aligned with the options.
// Curated symbols are preferred; the default palette fills the rest in
// order, and a numeric placeholder covers anything past the palette.
func (c *Codec) Encode(options []string) []string {
	symbols := make([]string, len(options))
	used := make(map[string]bool, len(options))
	paletteIdx := 0

	next := func(i int) string {
		for paletteIdx < len(defaultPalette) {
			s := defaultPalette[paletteIdx]
			paletteIdx++
			if !used[s] {
				return s
			}
		}
		return fmt.Sprintf("#%d", i+1)
	}

	for i, option := range options {
		if s, ok := curated[strings.ToLower(strings.TrimSpace(option))]; ok && !used[s] {
			symbols[i] = s
			used[s] = true
			continue
		}
		s := next(i)
		symbols[i] = s
		used[s] = true
	}

	return symbols
}

// Decode resolves a signal symbol against a line's persisted symbols,
// returning the option index. Unrecognized symbols report ok=false and
// are expected noise, not an error.
func (c *Codec) Decode(symbol string, symbols []string) (int, bool) {
	for i, s := range symbols {
		if s == symbol {
			return i, true
		}
	}
	return 0, false
}
