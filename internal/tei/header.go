package tei

import (
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/markup"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/presets"
)

// buildHeader assembles the teiHeader from resolved metadata. Empty
// fields are omitted rather than emitted blank.
func buildHeader(meta presets.Metadata) *markup.Element {
	fileDesc := markup.NewElement("fileDesc").Append(
		buildTitleStmt(meta),
		markup.NewElement("editionStmt").Append(
			markup.NewElement("edition").AppendText(orDefault(meta.EditionType, "Digital edition")),
		),
		buildPublicationStmt(meta),
		markup.NewElement("sourceDesc").Append(buildMsDesc(meta)),
	)

	encodingDesc := markup.NewElement("encodingDesc").Append(
		markup.NewElement("p").AppendText(
			"Converted from PAGE-XML with full semantic markup including " +
				"abbreviations, corrections, regularisations, numbers, person names, " +
				"place names, references, and text styling."),
	)

	language := markup.NewElement("language").
		SetAttr("ident", meta.Language).
		AppendText(presets.LanguageName(meta.Language))
	profileDesc := markup.NewElement("profileDesc").Append(
		markup.NewElement("langUsage").Append(language),
	)

	revisionDesc := markup.NewElement("revisionDesc").Append(
		markup.NewElement("change").AppendText(
			"Automated conversion from PAGE-XML with preservation of all annotations."),
	)

	return markup.NewElement("teiHeader").Append(fileDesc, encodingDesc, profileDesc, revisionDesc)
}

func buildTitleStmt(meta presets.Metadata) *markup.Element {
	titleStmt := markup.NewElement("titleStmt").Append(
		markup.NewElement("title").AppendText(meta.Title),
		markup.NewElement("author").AppendText(meta.Author),
	)
	if meta.Translator != "" {
		titleStmt.Append(markup.NewElement("editor").
			SetAttr("role", "translator").
			AppendText(meta.Translator))
	}
	if meta.EditionEditor != "" {
		titleStmt.Append(markup.NewElement("editor").AppendText(meta.EditionEditor))
	}
	titleStmt.Append(markup.NewElement("respStmt").Append(
		markup.NewElement("resp").AppendText(meta.Resp),
		markup.NewElement("name").AppendText(meta.RespName),
	))
	return titleStmt
}

func buildPublicationStmt(meta presets.Metadata) *markup.Element {
	publicationStmt := markup.NewElement("publicationStmt")
	if meta.Publisher != "" {
		publicationStmt.Append(markup.NewElement("publisher").AppendText(meta.Publisher))
	}
	if meta.PubDate != "" {
		publicationStmt.Append(markup.NewElement("date").AppendText(meta.PubDate))
	}
	publicationStmt.Append(markup.NewElement("p").
		AppendText("Digital edition for research and display purposes."))
	return publicationStmt
}

func buildMsDesc(meta presets.Metadata) *markup.Element {
	msIdentifier := markup.NewElement("msIdentifier")
	appendIfSet(msIdentifier, "country", meta.Country)
	appendIfSet(msIdentifier, "region", meta.Region)
	appendIfSet(msIdentifier, "settlement", meta.Settlement)
	appendIfSet(msIdentifier, "district", meta.District)
	appendIfSet(msIdentifier, "geogName", meta.GeogName)
	appendIfSet(msIdentifier, "institution", meta.Institution)
	appendIfSet(msIdentifier, "repository", meta.Repository)
	appendIfSet(msIdentifier, "collection", meta.Collection)
	appendIdno(msIdentifier, "oldCatalog", meta.IdnoOld)
	appendIdno(msIdentifier, "museumNew", meta.IdnoNew)
	appendIdno(msIdentifier, "siglum", meta.IdnoSiglum)

	msDesc := markup.NewElement("msDesc").Append(msIdentifier)

	if meta.PageN != "" {
		msDesc.Append(markup.NewElement("physDesc").Append(
			markup.NewElement("objectDesc").Append(
				markup.NewElement("supportDesc").Append(
					markup.NewElement("foliation").AppendText(
						`Numbered as "` + meta.PageN + `" in the current collection.`),
				),
			),
		))
	}

	origin := markup.NewElement("origin")
	if meta.OrigPlace != "" {
		origin.Append(markup.NewElement("origPlace").Append(
			markup.NewElement("placeName").AppendText(meta.OrigPlace),
		))
	}
	origDate := markup.NewElement("origDate")
	if meta.OrigNotBefore != "" {
		origDate.SetAttr("notBefore", meta.OrigNotBefore)
	}
	if meta.OrigNotAfter != "" {
		origDate.SetAttr("notAfter", meta.OrigNotAfter)
	}
	origDate.AppendText(meta.OrigLabel)
	origin.Append(origDate)
	msDesc.Append(markup.NewElement("history").Append(origin))

	return msDesc
}

func appendIfSet(parent *markup.Element, tag, value string) {
	if value != "" {
		parent.Append(markup.NewElement(tag).AppendText(value))
	}
}

func appendIdno(parent *markup.Element, idnoType, value string) {
	if value != "" {
		parent.Append(markup.NewElement("idno").
			SetAttr("type", idnoType).
			AppendText(value))
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
