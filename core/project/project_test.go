package project

import (
	"bytes"
	"testing"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/errors"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/markup"
)

func serialize(t *testing.T, frag markup.Fragment) string {
	t.Helper()
	var buf bytes.Buffer
	ab := markup.NewElement("ab").Append(frag...)
	buf.Write(markup.Serialize(ab, markup.FormatOptions{}))
	return buf.String()
}

func TestProject_PlainTextOnly(t *testing.T) {
	frag, events, err := Project("plain line", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
	if got := frag.PlainText(); got != "plain line" {
		t.Errorf("expected plain text to round-trip, got %q", got)
	}
	if len(frag) != 1 {
		t.Fatalf("expected a single text node, got %d nodes", len(frag))
	}
}

func TestProject_Deterministic(t *testing.T) {
	anns := []annot.Annotation{
		{Offset: 0, Length: 4, Detail: annot.Unclear{Reason: "damage"}},
		{Offset: 5, Length: 3, Detail: annot.Style{Bold: true}},
	}
	first, _, err := Project("some text here", anns)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := Project("some text here", anns)
	if err != nil {
		t.Fatal(err)
	}
	if serialize(t, first) != serialize(t, second) {
		t.Error("repeated projection produced different output")
	}
}

func TestProject_TextConservation(t *testing.T) {
	// Kinds whose element content is the witness slice must conserve
	// the raw text exactly, including characters released by a dropped
	// overlapping annotation.
	raw := "0123456789"
	anns := []annot.Annotation{
		{Offset: 0, Length: 5, Detail: annot.Unclear{}},
		{Offset: 1, Length: 3, Detail: annot.Style{Italic: true}}, // fully claimed, dropped
		{Offset: 7, Length: 2, Detail: annot.Number{Value: "89"}},
	}
	frag, events, err := Project(raw, anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || !events[0].Dropped() {
		t.Fatalf("expected one drop event, got %+v", events)
	}
	if got := frag.PlainText(); got != raw {
		t.Errorf("text not conserved: got %q, want %q", got, raw)
	}
}

func TestProject_OverlapPrecedence(t *testing.T) {
	// First-applied wins: A [0,5) renders in full, B [3,8) keeps only
	// its non-conflicting remainder [5,8).
	raw := "abcdefghij"
	anns := []annot.Annotation{
		{Offset: 0, Length: 5, Detail: annot.Unclear{Reason: "faded"}},
		{Offset: 3, Length: 5, Detail: annot.Style{Bold: true}},
	}
	frag, events, err := Project(raw, anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one overlap event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != annot.KindStyle || ev.Offset != 3 || ev.Length != 5 {
		t.Errorf("event records wrong requested range: %+v", ev)
	}
	if ev.KeptOffset != 5 || ev.KeptLength != 3 {
		t.Errorf("expected remainder [5,8), got [%d,%d)", ev.KeptOffset, ev.KeptOffset+ev.KeptLength)
	}

	if len(frag) != 3 {
		t.Fatalf("expected unclear + hi + tail text, got %d nodes", len(frag))
	}
	unclear, ok := frag[0].(*markup.Element)
	if !ok || unclear.Tag != "unclear" || unclear.PlainText() != "abcde" {
		t.Errorf("first node wrong: %+v", frag[0])
	}
	hi, ok := frag[1].(*markup.Element)
	if !ok || hi.Tag != "hi" || hi.PlainText() != "fgh" {
		t.Errorf("second node wrong: %+v", frag[1])
	}
	if tail, ok := frag[2].(markup.Text); !ok || string(tail) != "ij" {
		t.Errorf("tail wrong: %+v", frag[2])
	}
}

func TestProject_OverlapDropsFullyClaimed(t *testing.T) {
	anns := []annot.Annotation{
		{Offset: 0, Length: 6, Detail: annot.Unclear{}},
		{Offset: 2, Length: 2, Detail: annot.Style{Bold: true}},
	}
	frag, events, err := Project("abcdef", anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || !events[0].Dropped() {
		t.Fatalf("expected drop event, got %+v", events)
	}
	if len(frag) != 1 {
		t.Fatalf("expected only the unclear element, got %d nodes", len(frag))
	}
}

func TestProject_OverlapKeepsLeftmostRun(t *testing.T) {
	// An earlier claim in the middle of a later annotation splits it;
	// the later annotation keeps the leftmost run.
	anns := []annot.Annotation{
		{Offset: 4, Length: 2, Detail: annot.Unclear{}},
		{Offset: 2, Length: 6, Detail: annot.Style{Bold: true}},
	}
	_, events, err := Project("0123456789", anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].KeptOffset != 2 || events[0].KeptLength != 2 {
		t.Errorf("expected leftmost run [2,4), got [%d,%d)",
			events[0].KeptOffset, events[0].KeptOffset+events[0].KeptLength)
	}
}

func TestProject_FirstAppliedWinsUsesSourceOrder(t *testing.T) {
	// The later-positioned annotation appears first in the descriptor
	// sequence, so it wins the overlap even though it starts later.
	anns := []annot.Annotation{
		{Offset: 3, Length: 5, Detail: annot.Unclear{}},
		{Offset: 0, Length: 5, Detail: annot.Style{Bold: true}},
	}
	frag, events, err := Project("abcdefghij", anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Kind != annot.KindStyle {
		t.Errorf("expected the second descriptor to be truncated, got %v", events[0].Kind)
	}
	if events[0].KeptOffset != 0 || events[0].KeptLength != 3 {
		t.Errorf("expected remainder [0,3), got [%d,%d)",
			events[0].KeptOffset, events[0].KeptOffset+events[0].KeptLength)
	}
	// Output order is still offset order: hi first, then unclear.
	hi, ok := frag[0].(*markup.Element)
	if !ok || hi.Tag != "hi" {
		t.Errorf("expected hi first in offset order, got %+v", frag[0])
	}
}

func TestProject_RangeErrors(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		length int
	}{
		{"negative offset", -1, 3},
		{"negative length", 2, -1},
		{"end past text", 8, 5},
		{"offset past text", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anns := []annot.Annotation{
				{Offset: 0, Length: 2, Detail: annot.Unclear{}},
				{Offset: tt.offset, Length: tt.length, Detail: annot.Style{Bold: true}},
			}
			_, _, err := Project("0123456789", anns)
			if err == nil {
				t.Fatal("expected range error")
			}
			var rangeErr *errors.RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected *errors.RangeError, got %T", err)
			}
			if rangeErr.Index != 1 {
				t.Errorf("expected index 1, got %d", rangeErr.Index)
			}
		})
	}
}

func TestProject_NilDetail(t *testing.T) {
	_, _, err := Project("text", []annot.Annotation{{Offset: 0, Length: 2}})
	if err == nil {
		t.Fatal("expected unknown kind error")
	}
	if !errors.Is(err, errors.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestProject_ZeroLengthIsNoOp(t *testing.T) {
	anns := []annot.Annotation{
		{Offset: 3, Length: 0, Detail: annot.Unclear{}},
	}
	frag, events, err := Project("abcdef", anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("zero-length span must not trigger the overlap policy")
	}
	if len(frag) != 1 {
		t.Fatalf("expected a single plain-text node, got %d", len(frag))
	}
}

func TestProject_TruncatedSpanOrdering(t *testing.T) {
	// The num annotation is truncated to [3,6) by the two earlier
	// claims; surviving spans still render in start-offset order.
	anns := []annot.Annotation{
		{Offset: 0, Length: 2, Detail: annot.Unclear{}},
		{Offset: 2, Length: 1, Detail: annot.Style{Bold: true}},
		{Offset: 2, Length: 4, Detail: annot.Number{}},
	}
	frag, events, err := Project("abcdef", anns)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one truncation, got %d", len(events))
	}
	tags := make([]string, 0, len(frag))
	for _, n := range frag {
		if el, ok := n.(*markup.Element); ok {
			tags = append(tags, el.Tag)
		}
	}
	want := []string{"unclear", "hi", "num"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("element %d: expected %s, got %s", i, want[i], tags[i])
		}
	}
}
