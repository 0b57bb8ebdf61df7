// Package annot defines the shared data model for transcribed text lines
// and their inline annotation descriptors.
//
// Annotations arrive from PAGE-XML as loosely-typed kind/attribute tuples;
// here each kind carries its own well-typed detail struct so that a missing
// or misspelled attribute is a compile-time concern rather than a silent
// data loss at conversion time.
package annot

import "strings"

// Unordered is the reading-order index assigned to regions and lines that
// declare none. It sorts after every declared index.
const Unordered = int(^uint32(0) >> 1)

// Geometry holds the PAGE coordinate data for a line. Both fields are
// opaque point lists in PAGE "x,y x,y ..." syntax and are passed through
// to the output untouched.
type Geometry struct {
	Polygon  string
	Baseline string
}

// TextLine is one transcribed line together with its annotations and the
// composite reading-order key (RegionOrder, LineOrder, ID).
type TextLine struct {
	ID          string
	RegionOrder int
	LineOrder   int
	RawText     string
	Annotations []Annotation
	Geometry    Geometry
}

// Annotation covers the half-open character range
// [Offset, Offset+Length) of its line's raw text.
type Annotation struct {
	Offset int
	Length int
	Detail Detail
}

// End returns the exclusive end offset of the annotation's range.
func (a Annotation) End() int { return a.Offset + a.Length }

// Kind identifies one of the closed set of annotation kinds.
type Kind int

const (
	KindAbbreviation Kind = iota
	KindCorrection
	KindRegularisation
	KindNumber
	KindPersonName
	KindPlaceName
	KindReference
	KindUnclear
	KindStyle
)

// String returns the PAGE @custom tag name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAbbreviation:
		return "abbrev"
	case KindCorrection:
		return "sic"
	case KindRegularisation:
		return "regularised"
	case KindNumber:
		return "num"
	case KindPersonName:
		return "person"
	case KindPlaceName:
		return "place"
	case KindReference:
		return "ref"
	case KindUnclear:
		return "unclear"
	case KindStyle:
		return "textStyle"
	}
	return "unknown"
}

// Detail is the kind-specific payload of an annotation. The interface is
// closed: only the types in this package implement it, so a type switch
// over Detail is exhaustive.
type Detail interface {
	Kind() Kind
	isDetail()
}

// Abbreviation marks an abbreviated span; Expansion holds the expanded
// form. An empty Expansion falls back to the witness text.
type Abbreviation struct {
	Expansion string
}

// Correction marks a scribal error; Corrected holds the editor's reading.
type Correction struct {
	Corrected string
}

// Regularisation marks a span whose witness text IS the regularised form;
// Original holds the spelling found in the manuscript.
type Regularisation struct {
	Original string
}

// Number marks a numeral.
type Number struct {
	Type  string
	Value string
}

// PersonName marks a personal name. WikiData, when present, is the bare
// entity ID (e.g. "Q42"); the projector expands it to a full URI.
type PersonName struct {
	Type      string
	Firstname string
	WikiData  string
}

// PlaceName marks a place name, optionally normalised into the four
// gazetteer fields. When all four are empty the witness text stands alone.
type PlaceName struct {
	Country    string
	Region     string
	Settlement string
	District   string
}

// Reference marks a cross-reference.
type Reference struct {
	Type   string
	Target string
}

// Unclear marks an uncertain reading.
type Unclear struct {
	Reason string
}

// Style marks typographic highlighting.
type Style struct {
	Bold        bool
	Italic      bool
	Underline   bool
	Superscript bool
	Subscript   bool
}

// Rend returns the TEI @rend value: the set flags joined in the fixed
// canonical order bold, italic, underline, superscript, subscript.
func (s Style) Rend() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Superscript {
		parts = append(parts, "superscript")
	}
	if s.Subscript {
		parts = append(parts, "subscript")
	}
	return strings.Join(parts, " ")
}

func (Abbreviation) Kind() Kind   { return KindAbbreviation }
func (Correction) Kind() Kind     { return KindCorrection }
func (Regularisation) Kind() Kind { return KindRegularisation }
func (Number) Kind() Kind         { return KindNumber }
func (PersonName) Kind() Kind     { return KindPersonName }
func (PlaceName) Kind() Kind      { return KindPlaceName }
func (Reference) Kind() Kind      { return KindReference }
func (Unclear) Kind() Kind        { return KindUnclear }
func (Style) Kind() Kind          { return KindStyle }

func (Abbreviation) isDetail()   {}
func (Correction) isDetail()     {}
func (Regularisation) isDetail() {}
func (Number) isDetail()         {}
func (PersonName) isDetail()     {}
func (PlaceName) isDetail()      {}
func (Reference) isDetail()      {}
func (Unclear) isDetail()        {}
func (Style) isDetail()          {}
