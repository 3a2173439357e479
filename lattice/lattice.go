package lattice

import (
	"strings"
	"unicode/utf8"
)

const (
	// Groups is the number of symbol groups.
	Groups = 8
	// Slots is the number of symbols per group.
	Slots = 4
	// Size is the size of the alphabet.
	Size = Groups * Slots
)

// Symbol is one glyph of the alphabet.
type Symbol string

// Sequence is an ordered run of symbols.
type Sequence []Symbol

// String concatenates the sequence.
func (s Sequence) String() string {
	var b strings.Builder
	for _, sym := range s {
		b.WriteString(string(sym))
	}
	return b.String()
}

// Group names, in group order. Purely cosmetic.
var groupNames = [Groups]string{"moon", "stars", "elements", "crystals", "flora", "fauna", "shapes", "hearts"}

var table = [Groups][Slots]Symbol{
	{"🌑", "🌒", "🌓", "🌔"},
	{"⭐", "🌟", "💫", "🌠"},
	{"🔥", "💧", "🌀", "🌊"},
	{"💎", "🔮", "🧿", "🪐"},
	{"🌱", "🌿", "🍀", "🌸"},
	{"🐉", "🦋", "🐚", "🦉"},
	{"🔷", "🔶", "🔺", "🔻"},
	{"💜", "💙", "💚", "💛"},
}

var reverse = func() map[Symbol]uint64 {
	m := make(map[Symbol]uint64, Size)
	for g := range table {
		for s, sym := range table[g] {
			m[sym] = uint64(g + s*Groups)
		}
	}
	return m
}()

// Position returns the group and slot that Lookup uses for v.
func Position(v uint64) (group, slot int) {
	return int(v % Groups), int((v / Groups) % Slots)
}

// Lookup maps v to its symbol. It is total over uint64.
func Lookup(v uint64) Symbol {
	g, s := Position(v)
	return table[g][s]
}

// At returns the symbol at group g, slot s. It panics if either is out of range.
func At(g, s int) Symbol {
	return table[g][s]
}

// Index returns the representative integer group + slot*8 for sym.
// Unknown symbols yield (0, false).
func Index(sym Symbol) (uint64, bool) {
	v, ok := reverse[sym]
	return v, ok
}

// Contains reports whether sym is part of the alphabet.
func Contains(sym Symbol) bool {
	_, ok := reverse[sym]
	return ok
}

// Encode maps every value through Lookup.
func Encode(values []uint64) Sequence {
	seq := make(Sequence, len(values))
	for i, v := range values {
		seq[i] = Lookup(v)
	}
	return seq
}

// Split breaks a concatenated string back into symbols, one rune each.
// Runes outside the alphabet are kept as their own one-rune symbols so the
// positions of the remaining symbols are preserved. Invalid UTF-8 bytes
// become single-byte symbols.
func Split(s string) Sequence {
	seq := make(Sequence, 0, utf8.RuneCountInString(s))
	for len(s) > 0 {
		_, n := utf8.DecodeRuneInString(s)
		seq = append(seq, Symbol(s[:n]))
		s = s[n:]
	}
	return seq
}

// GroupName returns the cosmetic name of group g.
func GroupName(g int) string {
	return groupNames[g]
}

// Table returns a copy of the full lattice.
func Table() [Groups][Slots]Symbol {
	return table
}

// Symbols returns all symbols ordered by their reverse index.
func Symbols() []Symbol {
	out := make([]Symbol, Size)
	for sym, idx := range reverse {
		out[idx] = sym
	}
	return out
}
