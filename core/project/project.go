// Package project implements the annotation projector: it takes a line of
// raw transcribed text plus its offset/length annotation descriptors and
// produces a markup fragment with the annotations rendered as TEI inline
// elements.
//
// Overlapping annotations are resolved by a first-applied-wins policy:
// descriptors are processed in their source appearance order, and once a
// character position has been claimed, a later annotation that intersects
// it keeps only its leftmost contiguous unclaimed run, or is dropped when
// none remains. The truncation is lossy and intentional; every application
// of the policy is reported as an Event so the driver can log it for
// manual review.
package project

import (
	"sort"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/markup"
)

// WikiDataBaseURL prefixes bare WikiData entity IDs in persName @ref.
const WikiDataBaseURL = "https://www.wikidata.org/wiki/"

// Event records one application of the overlap policy. KeptLength == 0
// means the annotation was dropped entirely.
type Event struct {
	Kind       annot.Kind
	Offset     int // requested range
	Length     int
	KeptOffset int // surviving range after truncation
	KeptLength int
}

// Dropped reports whether the annotation lost its whole range.
func (e Event) Dropped() bool { return e.KeptLength == 0 }

// interval is a half-open claimed range [start, end).
type interval struct {
	start, end int
}

// span is an annotation bound to its surviving range.
type span struct {
	start, end int
	detail     annot.Detail
}

// Project renders rawText with its annotations as a markup fragment.
// It is a pure function: identical inputs yield identical output.
//
// Every annotation is range-checked up front; the first violation aborts
// with a *errors.RangeError carrying the descriptor index, so the caller
// can skip the offending descriptor and re-project. A nil or unrecognized
// detail yields a *errors.UnknownKindError. Zero-length annotations are
// degenerate no-op spans and are ignored.
func Project(rawText string, anns []annot.Annotation) (markup.Fragment, []Event, error) {
	for i, a := range anns {
		if a.Detail == nil {
			return nil, nil, &errors.UnknownKindError{Kind: "<nil>"}
		}
		if a.Offset < 0 || a.Length < 0 || a.Offset+a.Length > len(rawText) {
			return nil, nil, &errors.RangeError{
				Index:   i,
				Kind:    a.Detail.Kind().String(),
				Offset:  a.Offset,
				Length:  a.Length,
				TextLen: len(rawText),
			}
		}
	}

	var (
		claimed []interval
		spans   []span
		events  []Event
	)
	for _, a := range anns {
		if a.Length == 0 {
			continue
		}
		start, end := freeRun(claimed, a.Offset, a.End())
		if start != a.Offset || end != a.End() {
			events = append(events, Event{
				Kind:       a.Detail.Kind(),
				Offset:     a.Offset,
				Length:     a.Length,
				KeptOffset: start,
				KeptLength: end - start,
			})
		}
		if start == end {
			continue
		}
		claimed = claim(claimed, interval{start, end})
		spans = append(spans, span{start: start, end: end, detail: a.Detail})
	}

	// Start ascending; shorter span first on equal starts for
	// deterministic nesting.
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end-spans[i].start < spans[j].end-spans[j].start
	})

	var frag markup.Fragment
	cursor := 0
	for _, s := range spans {
		if s.start > cursor {
			frag = append(frag, markup.Text(rawText[cursor:s.start]))
		}
		el, err := render(s.detail, rawText[s.start:s.end])
		if err != nil {
			return nil, nil, err
		}
		frag = append(frag, el)
		cursor = s.end
	}
	if cursor < len(rawText) {
		frag = append(frag, markup.Text(rawText[cursor:]))
	}
	return frag, events, nil
}

// freeRun returns the leftmost maximal contiguous sub-range of
// [start, end) not covered by any claimed interval. An empty result
// (start == end) means the whole range is claimed.
func freeRun(claimed []interval, start, end int) (int, int) {
	s := start
	for _, c := range claimed {
		if c.end <= s {
			continue
		}
		if c.start > s {
			// Free run ends at the next claim or at the range end.
			e := end
			if c.start < e {
				e = c.start
			}
			return s, e
		}
		s = c.end
		if s >= end {
			return end, end
		}
	}
	if s < end {
		return s, end
	}
	return end, end
}

// claim inserts iv into the claimed set, keeping it sorted by start.
// iv never overlaps an existing interval: freeRun already excluded them.
func claim(claimed []interval, iv interval) []interval {
	at := sort.Search(len(claimed), func(i int) bool {
		return claimed[i].start >= iv.start
	})
	claimed = append(claimed, interval{})
	copy(claimed[at+1:], claimed[at:])
	claimed[at] = iv
	return claimed
}
