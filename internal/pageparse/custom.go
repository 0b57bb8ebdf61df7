package pageparse

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
)

// The PAGE @custom attribute is a micro-format of brace-delimited tag
// bodies, e.g.:
//
//	readingOrder {index:3;} abbrev {offset:9;length:2;expansion:Dominus;}
//
// Values run to the next semicolon and may contain spaces, colons and
// URLs, so the lexer switches into a dedicated state after each key's
// colon.

//nolint:govet // participle grammar tags are not standard struct tags
type customList struct {
	Tags []*customTagNode `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type customTagNode struct {
	Name  string            `@Ident`
	Pairs []*customPairNode `OBrace @@* CBrace`
}

//nolint:govet // participle grammar tags are not standard struct tags
type customPairNode struct {
	Key   string `@Ident Colon`
	Value string `@Value? Semi`
}

var customLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "OBrace", Pattern: `\{`, Action: lexer.Push("Tag")},
		{Name: "Whitespace", Pattern: `\s+`},
	},
	"Tag": {
		{Name: "CBrace", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Colon", Pattern: `:`, Action: lexer.Push("Value")},
		{Name: "Whitespace", Pattern: `\s+`},
	},
	"Value": {
		{Name: "Semi", Pattern: `;`, Action: lexer.Pop()},
		{Name: "Value", Pattern: `[^;}]+`},
	},
})

var customParser = participle.MustBuild[customList](
	participle.Lexer(customLexer),
	participle.Elide("Whitespace"),
)

// customTag is one parsed tag of a @custom attribute.
type customTag struct {
	Name  string
	Attrs map[string]string
}

// parseCustom parses a PAGE @custom attribute into its tag list.
// Values are whitespace-trimmed, matching how transcription tools emit
// them.
func parseCustom(s string) ([]customTag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parsed, err := customParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "custom",
			Message: err.Error(),
			Err:     err,
		}
	}
	tags := make([]customTag, 0, len(parsed.Tags))
	for _, t := range parsed.Tags {
		attrs := make(map[string]string, len(t.Pairs))
		for _, p := range t.Pairs {
			attrs[p.Key] = strings.TrimSpace(p.Value)
		}
		tags = append(tags, customTag{Name: t.Name, Attrs: attrs})
	}
	return tags, nil
}

// readingOrderIndex extracts the readingOrder index from a tag list,
// or annot.Unordered when absent or malformed.
func readingOrderIndex(tags []customTag) int {
	for _, t := range tags {
		if t.Name != "readingOrder" {
			continue
		}
		idx, err := strconv.Atoi(t.Attrs["index"])
		if err != nil || idx < 0 {
			return annot.Unordered
		}
		return idx
	}
	return annot.Unordered
}

// housekeepingTags are @custom tags that describe layout rather than
// inline annotations. They are consumed by the parser (or deliberately
// ignored), never mapped to annotation descriptors.
var housekeepingTags = map[string]bool{
	"readingOrder": true,
	"structure":    true,
}

// mapAnnotation converts one @custom tag to a typed annotation
// descriptor. Unknown kinds and malformed offsets/lengths are errors;
// the caller decides whether to skip or abort.
func mapAnnotation(tag customTag) (annot.Annotation, error) {
	offset, err := requireInt(tag, "offset")
	if err != nil {
		return annot.Annotation{}, err
	}
	length, err := requireInt(tag, "length")
	if err != nil {
		return annot.Annotation{}, err
	}

	var detail annot.Detail
	switch tag.Name {
	case "abbrev":
		detail = annot.Abbreviation{Expansion: tag.Attrs["expansion"]}
	case "sic":
		detail = annot.Correction{Corrected: tag.Attrs["correction"]}
	case "regularised":
		detail = annot.Regularisation{Original: tag.Attrs["original"]}
	case "num":
		detail = annot.Number{Type: tag.Attrs["type"], Value: tag.Attrs["value"]}
	case "person":
		detail = annot.PersonName{
			Type:      tag.Attrs["type"],
			Firstname: tag.Attrs["firstname"],
			WikiData:  tag.Attrs["wikiData"],
		}
	case "place":
		detail = annot.PlaceName{
			Country:    tag.Attrs["country"],
			Region:     tag.Attrs["region"],
			Settlement: tag.Attrs["settlement"],
			District:   tag.Attrs["district"],
		}
	case "ref":
		detail = annot.Reference{Type: tag.Attrs["type"], Target: tag.Attrs["target"]}
	case "unclear":
		detail = annot.Unclear{Reason: tag.Attrs["reason"]}
	case "textStyle":
		detail = annot.Style{
			Bold:        parseBool(tag.Attrs["bold"]),
			Italic:      parseBool(tag.Attrs["italic"]),
			Underline:   parseBool(tag.Attrs["underline"]),
			Superscript: parseBool(tag.Attrs["superscript"]),
			Subscript:   parseBool(tag.Attrs["subscript"]),
		}
	default:
		return annot.Annotation{}, &errors.UnknownKindError{Kind: tag.Name}
	}

	return annot.Annotation{Offset: offset, Length: length, Detail: detail}, nil
}

func requireInt(tag customTag, key string) (int, error) {
	raw, ok := tag.Attrs[key]
	if !ok {
		return 0, &errors.ParseError{
			Format:  "custom",
			Message: tag.Name + " tag missing " + key,
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &errors.ParseError{
			Format:  "custom",
			Message: tag.Name + " tag has invalid " + key + " " + strconv.Quote(raw),
			Err:     err,
		}
	}
	return n, nil
}

// parseBool follows the PAGE convention for boolean flags.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
