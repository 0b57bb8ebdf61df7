// Package tei assembles the TEI P5 document tree from a parsed PAGE
// document and resolved metadata: teiHeader, facsimile surfaces and
// zones, and the transcription body with sequenced, projected lines.
package tei

import (
	"strconv"
	"strings"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/markup"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/project"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/sequence"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/pageparse"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/presets"
)

// TEINamespace is the TEI P5 namespace.
const TEINamespace = "http://www.tei-c.org/ns/1.0"

// ImagePathPrefix is prepended to graphic URLs that lack it, so the
// output edition resolves images relative to its own directory layout.
const ImagePathPrefix = "images/"

// LineIssue records one annotation rejected while projecting a line.
type LineIssue struct {
	LineID string
	Err    error
}

// LineOverlap records one overlap-policy application on a line.
type LineOverlap struct {
	LineID string
	Event  project.Event
}

// Report summarizes everything that affected conversion fidelity. The
// driver logs it and prints the counts, since truncated or skipped
// annotations need manual review.
type Report struct {
	Lines        int
	SourceHash   string
	RangeErrors  []LineIssue
	UnknownKinds int
	Overlaps     []LineOverlap
}

// Build assembles the full TEI document from a parsed PAGE document.
func Build(doc *pageparse.Document, meta presets.Metadata) (*markup.Element, *Report, error) {
	report := &Report{
		SourceHash:   doc.SourceHash,
		UnknownKinds: doc.UnknownKindCount(),
	}

	root := markup.NewElement("TEI").SetAttr("xmlns", TEINamespace)
	root.Append(buildHeader(meta))

	facsimile := markup.NewElement("facsimile")
	div := markup.NewElement("div").
		SetAttr("type", "transcription").
		SetAttr("xml:lang", meta.Language)

	for _, page := range doc.Pages {
		if err := buildPage(page, meta, facsimile, div, report); err != nil {
			return nil, nil, err
		}
	}

	root.Append(facsimile)
	root.Append(markup.NewElement("text").Append(
		markup.NewElement("body").Append(div),
	))
	return root, report, nil
}

func buildPage(page pageparse.Page, meta presets.Metadata, facsimile, div *markup.Element, report *Report) error {
	pageID := "p" + strconv.Itoa(page.Number)
	surface := markup.NewElement("surface").
		SetAttr("n", strconv.Itoa(page.Number)).
		SetAttr("xml:id", pageID)
	if meta.PageSide != "" {
		surface.SetAttr("type", meta.PageSide)
	}
	if meta.PageN != "" {
		surface.SetAttr("n", meta.PageN)
	}

	graphic := markup.NewElement("graphic")
	if page.ImageFilename != "" {
		url := page.ImageFilename
		if !strings.HasPrefix(url, ImagePathPrefix) {
			url = ImagePathPrefix + url
		}
		graphic.SetAttr("url", url)
	}
	if page.ImageWidth != "" {
		graphic.SetAttr("width", page.ImageWidth)
	}
	if page.ImageHeight != "" {
		graphic.SetAttr("height", page.ImageHeight)
	}
	surface.Append(graphic)

	for _, region := range page.Regions {
		zone := markup.NewElement("zone").
			SetAttr("type", region.Type).
			SetAttr("xml:id", "z_"+region.ID)
		if region.Points != "" {
			zone.SetAttr("points", region.Points)
		}
		surface.Append(zone)
	}

	div.Append(markup.NewElement("pb").
		SetAttr("n", strconv.Itoa(page.Number)).
		SetAttr("facs", "#"+pageID))

	for lineNum, line := range sequence.Lines(page.Lines) {
		zoneID := "z_" + line.ID
		zone := markup.NewElement("zone").
			SetAttr("type", "line").
			SetAttr("xml:id", zoneID)
		if line.Geometry.Polygon != "" {
			zone.SetAttr("points", line.Geometry.Polygon)
		}
		if line.Geometry.Baseline != "" {
			zone.SetAttr("baseline", line.Geometry.Baseline)
		}
		surface.Append(zone)

		div.Append(markup.NewElement("lb").
			SetAttr("facs", "#"+zoneID).
			SetAttr("n", strconv.Itoa(lineNum+1)))

		frag, err := projectLine(line, report)
		if err != nil {
			return err
		}
		ab := markup.NewElement("ab")
		if frag.Empty() {
			ab.AppendText(line.RawText)
		} else {
			ab.Append(frag...)
		}
		div.Append(ab)
		report.Lines++
	}
	return nil
}

// projectLine projects one line, applying the driver policy for range
// violations: the offending descriptor is recorded and skipped, the
// line is kept and re-projected. Any other projector error aborts the
// conversion.
func projectLine(line annot.TextLine, report *Report) (markup.Fragment, error) {
	anns := line.Annotations
	for {
		frag, events, err := project.Project(line.RawText, anns)
		if err == nil {
			for _, ev := range events {
				report.Overlaps = append(report.Overlaps, LineOverlap{LineID: line.ID, Event: ev})
			}
			return frag, nil
		}

		var rangeErr *errors.RangeError
		if !errors.As(err, &rangeErr) {
			return nil, errors.Wrapf(err, "projecting line %s", line.ID)
		}
		report.RangeErrors = append(report.RangeErrors, LineIssue{LineID: line.ID, Err: rangeErr})

		remaining := make([]annot.Annotation, 0, len(anns)-1)
		remaining = append(remaining, anns[:rangeErr.Index]...)
		remaining = append(remaining, anns[rangeErr.Index+1:]...)
		anns = remaining
	}
}
