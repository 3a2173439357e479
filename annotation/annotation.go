// Package annotation exports a spectral Shadow as a structured key/value
// block, either as an RDFa fragment or as a codec-serialized object.
package annotation

import (
	"html"
	"strconv"
	"strings"

	"github.com/zone42/glyphs/codec"
	"github.com/zone42/glyphs/spectral"
)

// Property names, relative to the vocabulary prefix.
const (
	GodelNumber       = "godelNumber"
	CurveIndex        = "curveIndex"
	FrequencyBand     = "frequencyBand"
	Eigenvalue        = "eigenvalue"
	SpectralParameter = "spectralParameter"
	SymmetryClass     = "symmetryClass"
	FourierCoeffs     = "fourierCoefficients"
	HeckeEigenvalues  = "heckeEigenvalues"
	Glyphs            = "glyphs"

	// TypeName is the RDFa type of a block.
	TypeName = "MaassShadow"
)

// Vocabulary names the prefix and IRI the block properties live under.
type Vocabulary struct {
	Prefix string
	IRI    string
}

// DefaultVocabulary is used by FromShadow.
var DefaultVocabulary = Vocabulary{Prefix: "zone42", IRI: "https://zone42.dev/ns#"}

// Term returns the prefixed form of a property name.
func (v Vocabulary) Term(name string) string {
	return v.Prefix + ":" + name
}

// Entry is one tagged scalar value.
type Entry struct {
	Property string
	Value    string
}

// HeckeEntry is one prime -> eigenvalue pair.
type HeckeEntry struct {
	Prime uint64
	Value uint64
}

// Block is an ordered annotation of one Shadow.
type Block struct {
	vocab   Vocabulary
	shadow  spectral.Shadow
	glyphs  string
	entries []Entry
	hecke   []HeckeEntry
}

// FromShadow annotates s with DefaultVocabulary.
func FromShadow(s spectral.Shadow, glyphs string) Block {
	return DefaultVocabulary.Annotate(s, glyphs)
}

// Annotate builds a Block for s. glyphs is the concatenated symbol
// sequence; an empty string omits the glyphs entry.
func (v Vocabulary) Annotate(s spectral.Shadow, glyphs string) Block {
	b := Block{vocab: v, shadow: s, glyphs: glyphs}

	b.entries = []Entry{
		{v.Term(GodelNumber), strconv.FormatUint(s.Godel, 10)},
		{v.Term(CurveIndex), strconv.FormatUint(s.Curve, 10)},
		{v.Term(FrequencyBand), strconv.FormatUint(s.Band, 10)},
		{v.Term(Eigenvalue), formatFloat(s.Eigenvalue)},
		{v.Term(SpectralParameter), formatFloat(s.SpectralParameter)},
		{v.Term(SymmetryClass), s.Symmetry},
		{v.Term(FourierCoeffs), joinUints(s.Fourier[:])},
	}
	if glyphs != "" {
		b.entries = append(b.entries, Entry{v.Term(Glyphs), glyphs})
	}

	b.hecke = make([]HeckeEntry, s.HeckeLen())
	for i := range b.hecke {
		p, val := s.HeckeAt(i)
		b.hecke[i] = HeckeEntry{Prime: p, Value: val}
	}
	return b
}

// Vocabulary returns the vocabulary the block was built with.
func (b Block) Vocabulary() Vocabulary { return b.vocab }

// Entries returns a copy of the scalar entries in export order.
func (b Block) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Hecke returns a copy of the Hecke pairs in ascending prime order.
func (b Block) Hecke() []HeckeEntry {
	out := make([]HeckeEntry, len(b.hecke))
	copy(out, b.hecke)
	return out
}

// Get looks up a scalar entry by its prefixed property.
func (b Block) Get(property string) (string, bool) {
	for _, e := range b.entries {
		if e.Property == property {
			return e.Value, true
		}
	}
	return "", false
}

// Map returns the block as a structured object. Numeric values keep their
// numeric types; Hecke eigenvalues become a nested object keyed by prime.
func (b Block) Map() map[string]any {
	v := b.vocab
	s := b.shadow

	hecke := make(map[string]uint64, len(b.hecke))
	for _, h := range b.hecke {
		hecke[strconv.FormatUint(h.Prime, 10)] = h.Value
	}

	m := map[string]any{
		v.Term(GodelNumber):       s.Godel,
		v.Term(CurveIndex):        s.Curve,
		v.Term(FrequencyBand):     s.Band,
		v.Term(Eigenvalue):        s.Eigenvalue,
		v.Term(SpectralParameter): s.SpectralParameter,
		v.Term(SymmetryClass):     s.Symmetry,
		v.Term(FourierCoeffs):     joinUints(s.Fourier[:]),
		v.Term(HeckeEigenvalues):  hecke,
	}
	m["@type"] = v.Term(TypeName)
	if b.glyphs != "" {
		m[v.Term(Glyphs)] = b.glyphs
	}
	return m
}

// RDFa renders the block as an HTML fragment.
func (b Block) RDFa() string {
	var sb strings.Builder

	sb.WriteString(`<div vocab="`)
	sb.WriteString(html.EscapeString(b.vocab.IRI))
	sb.WriteString(`" prefix="`)
	sb.WriteString(html.EscapeString(b.vocab.Prefix + ": " + b.vocab.IRI))
	sb.WriteString(`" typeof="`)
	sb.WriteString(html.EscapeString(b.vocab.Term(TypeName)))
	sb.WriteString("\">\n")

	for _, e := range b.entries {
		writeSpan(&sb, "  ", e.Property, e.Value)
	}

	sb.WriteString(`  <div property="`)
	sb.WriteString(html.EscapeString(b.vocab.Term(HeckeEigenvalues)))
	sb.WriteString("\" typeof=\"rdf:Description\">\n")
	for _, h := range b.hecke {
		writeSpan(&sb, "    ", b.vocab.Term("p"+strconv.FormatUint(h.Prime, 10)), strconv.FormatUint(h.Value, 10))
	}
	sb.WriteString("  </div>\n</div>\n")

	return sb.String()
}

func writeSpan(sb *strings.Builder, indent, property, value string) {
	sb.WriteString(indent)
	sb.WriteString(`<span property="`)
	sb.WriteString(html.EscapeString(property))
	sb.WriteString(`" content="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteString("\"></span>\n")
}

// Marshal serializes b.Map() with c. A nil codec selects codec.Default.
func Marshal(c codec.Codec, b Block) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(b.Map())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinUints(vs []uint64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ",")
}
