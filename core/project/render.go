package project

import (
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/markup"
)

// render builds the TEI element for one annotated run. slice is the
// witness text covered by the annotation's surviving range.
func render(d annot.Detail, slice string) (*markup.Element, error) {
	switch v := d.(type) {
	case annot.Abbreviation:
		expansion := v.Expansion
		if expansion == "" {
			expansion = slice
		}
		return markup.NewElement("choice").Append(
			markup.NewElement("abbr").AppendText(slice),
			markup.NewElement("expan").AppendText(expansion),
		), nil

	case annot.Correction:
		return markup.NewElement("choice").Append(
			markup.NewElement("sic").AppendText(slice),
			markup.NewElement("corr").AppendText(v.Corrected),
		), nil

	case annot.Regularisation:
		// Inverted relative to abbrev/sic: the witness text is the
		// regularised form, the original spelling comes from the
		// annotation.
		return markup.NewElement("choice").Append(
			markup.NewElement("orig").AppendText(v.Original),
			markup.NewElement("reg").AppendText(slice),
		), nil

	case annot.Number:
		num := markup.NewElement("num")
		if v.Type != "" {
			num.SetAttr("type", v.Type)
		}
		if v.Value != "" {
			num.SetAttr("value", v.Value)
		}
		return num.AppendText(slice), nil

	case annot.PersonName:
		persName := markup.NewElement("persName")
		if v.Type != "" {
			persName.SetAttr("type", v.Type)
		}
		if v.WikiData != "" {
			persName.SetAttr("ref", WikiDataBaseURL+v.WikiData)
		}
		return persName.AppendText(slice), nil

	case annot.PlaceName:
		placeName := markup.NewElement("placeName")
		for _, part := range []struct {
			tag, value string
		}{
			{"country", v.Country},
			{"region", v.Region},
			{"settlement", v.Settlement},
			{"district", v.District},
		} {
			if part.value != "" {
				placeName.Append(markup.NewElement(part.tag).AppendText(part.value))
			}
		}
		// Without gazetteer fields the witness text stands alone.
		if len(placeName.Children) == 0 {
			placeName.AppendText(slice)
		}
		return placeName, nil

	case annot.Reference:
		ref := markup.NewElement("ref")
		if v.Type != "" {
			ref.SetAttr("type", v.Type)
		}
		if v.Target != "" {
			ref.SetAttr("target", v.Target)
		}
		return ref.AppendText(slice), nil

	case annot.Unclear:
		unclear := markup.NewElement("unclear")
		if v.Reason != "" {
			unclear.SetAttr("reason", v.Reason)
		}
		return unclear.AppendText(slice), nil

	case annot.Style:
		hi := markup.NewElement("hi")
		if rend := v.Rend(); rend != "" {
			hi.SetAttr("rend", rend)
		}
		return hi.AppendText(slice), nil
	}

	return nil, &errors.UnknownKindError{Kind: d.Kind().String()}
}
