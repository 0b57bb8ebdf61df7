// Package pageparse reads PAGE-XML documents produced by handwritten-text
// recognition tools and extracts the per-line records consumed by the
// projector and sequencer: raw text, typed annotation descriptors, zone
// geometry and reading-order indices.
package pageparse

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
)

// Document is a parsed PAGE-XML source document.
type Document struct {
	// SourceHash is the BLAKE3 fingerprint of the raw input bytes,
	// recorded for provenance in the conversion report.
	SourceHash string

	Pages []Page

	// Skipped lists annotation descriptors the parser could not map:
	// kinds outside the closed set and tags with malformed offsets or
	// lengths. They are surfaced here, never dropped silently.
	Skipped []SkippedAnnotation
}

// Page is one PAGE <Page> element.
type Page struct {
	Number        int // 1-based position in the document
	ImageFilename string
	ImageWidth    string
	ImageHeight   string
	Regions       []Region
	Lines         []annot.TextLine
}

// Region is a layout block; Type is the PAGE element local name
// (TextRegion, ImageRegion, ...).
type Region struct {
	ID     string
	Type   string
	Points string
	Order  int
}

// SkippedAnnotation records one descriptor the parser rejected.
type SkippedAnnotation struct {
	LineID string
	Kind   string
	Err    error
}

var (
	pageQuery     = xpath.MustCompile("//Page")
	regionQuery   = xpath.MustCompile(".//*[ends-with(name(), 'Region')]")
	textLineQuery = xpath.MustCompile(".//TextRegion/TextLine")
)

// Parse reads a PAGE-XML document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", "", err)
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "PAGE-XML", Message: err.Error(), Err: err}
	}

	sum := blake3.Sum256(data)
	doc := &Document{SourceHash: hex.EncodeToString(sum[:])}

	for i, pageNode := range xmlquery.QuerySelectorAll(root, pageQuery) {
		page := Page{
			Number:        i + 1,
			ImageFilename: pageNode.SelectAttr("imageFilename"),
			ImageWidth:    pageNode.SelectAttr("imageWidth"),
			ImageHeight:   pageNode.SelectAttr("imageHeight"),
		}
		doc.parsePage(pageNode, &page)
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func (d *Document) parsePage(pageNode *xmlquery.Node, page *Page) {
	// Every *Region becomes a facsimile zone; reading order only
	// matters for TextRegions, whose order index the lines inherit.
	regionOrder := make(map[string]int)
	for _, regionNode := range xmlquery.QuerySelectorAll(pageNode, regionQuery) {
		id := regionNode.SelectAttr("id")
		if id == "" {
			id = fmt.Sprintf("reg_%s_%d", regionNode.Data, page.Number)
		}

		order := annot.Unordered
		tags, err := parseCustom(regionNode.SelectAttr("custom"))
		if err != nil {
			d.Skipped = append(d.Skipped, SkippedAnnotation{LineID: id, Kind: "custom", Err: err})
		} else {
			order = readingOrderIndex(tags)
		}
		regionOrder[id] = order

		region := Region{ID: id, Type: regionNode.Data, Order: order}
		if coords := xmlquery.FindOne(regionNode, "Coords"); coords != nil {
			region.Points = coords.SelectAttr("points")
		}
		page.Regions = append(page.Regions, region)
	}

	for _, lineNode := range xmlquery.QuerySelectorAll(pageNode, textLineQuery) {
		line := annot.TextLine{
			ID:          lineNode.SelectAttr("id"),
			RegionOrder: annot.Unordered,
			LineOrder:   annot.Unordered,
		}
		if line.ID == "" {
			line.ID = "tl_" + uuid.NewString()
		}
		if parent := lineNode.Parent; parent != nil {
			if order, ok := regionOrder[parent.SelectAttr("id")]; ok {
				line.RegionOrder = order
			}
		}

		if coords := xmlquery.FindOne(lineNode, "Coords"); coords != nil {
			line.Geometry.Polygon = coords.SelectAttr("points")
		}
		if baseline := xmlquery.FindOne(lineNode, "Baseline"); baseline != nil {
			line.Geometry.Baseline = baseline.SelectAttr("points")
		}
		if unicode := xmlquery.FindOne(lineNode, "TextEquiv/Unicode"); unicode != nil {
			line.RawText = unicode.InnerText()
		}

		tags, err := parseCustom(lineNode.SelectAttr("custom"))
		if err != nil {
			d.Skipped = append(d.Skipped, SkippedAnnotation{LineID: line.ID, Kind: "custom", Err: err})
		} else {
			line.LineOrder = readingOrderIndex(tags)
			for _, tag := range tags {
				if housekeepingTags[tag.Name] {
					continue
				}
				a, err := mapAnnotation(tag)
				if err != nil {
					var unknown *errors.UnknownKindError
					if errors.As(err, &unknown) {
						unknown.LineID = line.ID
					}
					d.Skipped = append(d.Skipped, SkippedAnnotation{
						LineID: line.ID,
						Kind:   tag.Name,
						Err:    err,
					})
					continue
				}
				line.Annotations = append(line.Annotations, a)
			}
		}

		page.Lines = append(page.Lines, line)
	}
}

// UnknownKindCount returns how many skipped descriptors failed with an
// unknown-kind error (as opposed to malformed offsets/lengths).
func (d *Document) UnknownKindCount() int {
	n := 0
	for _, s := range d.Skipped {
		if errors.Is(s.Err, errors.ErrUnknownKind) {
			n++
		}
	}
	return n
}
