package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultPrefix is the vocabulary prefix used by Fields.
const DefaultPrefix = "zone42"

// Field labels.
const (
	FieldGodel = "godelNumber"
	FieldCurve = "curveIndex"
	FieldBand  = "frequencyBand"
)

// Result holds a fully extracted triple.
type Result struct {
	Godel uint64
	Curve uint64
	Band  uint64
}

type fieldPattern struct {
	name     string
	patterns []*regexp.Regexp
}

// Extractor scans text for the labeled fields under one prefix.
// It is immutable and safe for concurrent use.
type Extractor struct {
	prefix string
	fields [3]fieldPattern
}

// New builds an Extractor for the given vocabulary prefix. An empty prefix
// selects DefaultPrefix.
func New(prefix string) *Extractor {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	e := &Extractor{prefix: prefix}
	for i, name := range [3]string{FieldGodel, FieldCurve, FieldBand} {
		e.fields[i] = fieldPattern{name: name, patterns: compile(prefix, name)}
	}
	return e
}

func compile(prefix, name string) []*regexp.Regexp {
	term := regexp.QuoteMeta(prefix + ":" + name)
	return []*regexp.Regexp{
		regexp.MustCompile(term + `\s+"([^"]*)"`),
		regexp.MustCompile(`property\s*=\s*"` + term + `"[^>]*?\scontent\s*=\s*"([^"]*)"`),
	}
}

// Prefix returns the vocabulary prefix.
func (e *Extractor) Prefix() string {
	return e.prefix
}

// Extract reads all three fields from text.
func (e *Extractor) Extract(text string) (Result, error) {
	var vals [3]uint64
	for i, f := range e.fields {
		v, err := f.read(text)
		if err != nil {
			return Result{}, err
		}
		vals[i] = v
	}
	return Result{Godel: vals[0], Curve: vals[1], Band: vals[2]}, nil
}

func (f fieldPattern) read(text string) (uint64, error) {
	for _, re := range f.patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, &MalformedInputError{Field: f.name, Reason: "is not a non-negative integer: " + strconv.Quote(raw), cause: err}
		}
		return v, nil
	}
	return 0, &MalformedInputError{Field: f.name, Reason: "is missing"}
}

var defaultExtractor = New(DefaultPrefix)

// Fields extracts the triple using DefaultPrefix.
func Fields(text string) (Result, error) {
	return defaultExtractor.Extract(text)
}
