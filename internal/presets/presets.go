// Package presets resolves the TEI header metadata for a conversion.
// Built-in presets cover the two edition types of the PGM XIII corpus;
// a YAML preset file and CLI flags can override individual fields. The
// resolved Metadata is passed explicitly to the assembler — there is no
// process-global configuration state.
package presets

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
)

// Edition types.
const (
	EditionDiplomatic  = "diplomatic"
	EditionTranslation = "translation"
)

// Metadata holds every teiHeader field the assembler consumes. Empty
// fields are omitted from the output header.
type Metadata struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	EditionEditor string `yaml:"edition_editor"`
	Translator    string `yaml:"translator"`
	Resp          string `yaml:"resp"`
	RespName      string `yaml:"resp_name"`
	Publisher     string `yaml:"publisher"`
	PubDate       string `yaml:"pub_date"`

	Country     string `yaml:"country"`
	Region      string `yaml:"region"`
	Settlement  string `yaml:"settlement"`
	District    string `yaml:"district"`
	GeogName    string `yaml:"geog_name"`
	Institution string `yaml:"institution"`
	Repository  string `yaml:"repository"`
	Collection  string `yaml:"collection"`
	IdnoOld     string `yaml:"idno_old"`
	IdnoNew     string `yaml:"idno_new"`
	IdnoSiglum  string `yaml:"idno_siglum"`

	OrigPlace     string `yaml:"orig_place"`
	OrigNotBefore string `yaml:"orig_not_before"`
	OrigNotAfter  string `yaml:"orig_not_after"`
	OrigLabel     string `yaml:"orig_label"`

	PageN       string `yaml:"page_n"`
	PageSide    string `yaml:"page_side"`
	EditionType string `yaml:"edition_type"`
	Language    string `yaml:"language"`
}

// ForEdition returns the built-in preset for the given edition type.
// Unknown edition types fall back to the translation preset, matching
// the source tool's behavior.
func ForEdition(edition string) Metadata {
	if edition == EditionDiplomatic {
		return Metadata{
			Title:         "PGM XIII — Diplomatic transcription",
			Author:        "Anonymous",
			EditionEditor: "Robert W. Daniel",
			Resp:          "digital edition preparation and TEI encoding",
			RespName:      "Federico Gaviria Zambrano",
			Publisher:     "Springer Fachmedien Wiesbaden GmbH",
			PubDate:       "1991",
			Country:       "Netherlands",
			Settlement:    "Leiden",
			Institution:   "Rijksmuseum van Oudheden",
			Collection:    "PGM",
			IdnoOld:       "J395",
			IdnoNew:       "AMS76",
			IdnoSiglum:    "PGM XIII",
			OrigPlace:     "Egypt",
			OrigNotBefore: "-0100",
			OrigNotAfter:  "0400",
			OrigLabel:     "1st c. BCE–4th c. CE",
			EditionType:   "Diplomatic transcription",
			Language:      "grc",
		}
	}
	return Metadata{
		Title:         "PGM XIII — Spanish translation",
		Author:        "Anonymous",
		EditionEditor: "Robert W. Daniel",
		Translator:    "Federico Gaviria Zambrano",
		Resp:          "Spanish translation and TEI encoding",
		RespName:      "Federico Gaviria Zambrano",
		Publisher:     "Springer Fachmedien Wiesbaden GmbH",
		PubDate:       "1991",
		Country:       "Netherlands",
		Settlement:    "Leiden",
		Institution:   "Rijksmuseum van Oudheden",
		Collection:    "PGM",
		IdnoOld:       "J395",
		IdnoNew:       "AMS76",
		IdnoSiglum:    "PGM XIII",
		OrigPlace:     "Egypt",
		OrigNotBefore: "-0100",
		OrigNotAfter:  "0400",
		OrigLabel:     "1st c. BCE–4th c. CE",
		EditionType:   "Spanish translation",
		Language:      "es",
	}
}

// DetectEdition guesses the edition type from filename markers used by
// the transcription workflow. Returns "" when undetectable.
func DetectEdition(filename string) string {
	base := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.Contains(base, "_dip") || strings.Contains(base, "diplomatic"):
		return EditionDiplomatic
	case strings.Contains(base, "_trad") || strings.Contains(base, "translation") ||
		strings.Contains(base, "trans"):
		return EditionTranslation
	}
	return ""
}

// LoadFile applies a YAML preset file on top of meta. Only fields
// present in the file are overridden.
func LoadFile(path string, meta *Metadata) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, meta); err != nil {
		return &errors.ParseError{Format: "preset", Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// LanguageName returns the display name for the language codes the
// corpus uses; other codes are returned verbatim.
func LanguageName(code string) string {
	switch code {
	case "grc":
		return "Ancient Greek"
	case "es":
		return "Spanish"
	case "la":
		return "Latin"
	}
	return code
}
