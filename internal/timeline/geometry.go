package timeline

// Span is the horizontal extent of one segment expressed as fractions of the
// full width, where 1.0 corresponds to the max duration. Separator is the
// index of the divider drawn at End; it always equals Index.
type Span struct {
	Index     int
	Start     float64
	End       float64
	State     State
	Separator int
}

// Width returns End - Start.
func (s Span) Width() float64 { return s.End - s.Start }

// ShowsSeparator reports whether a divider is drawn at the end of the span.
// Growing segments (opened, final) have an open edge; closed and paused
// segments are capped, paused ones with a blinking divider.
func (s Span) ShowsSeparator() bool {
	return s.State == StateClosed || s.State == StatePaused
}

// Geometry returns the layout of every segment in recording order. Spans are
// contiguous: each Start equals the previous End.
func (t *Timeline) Geometry() []Span {
	spans := make([]Span, 0, len(t.segments))

	var offset float64
	for i, s := range t.segments {
		w := s.Duration / t.maxDuration
		spans = append(spans, Span{
			Index:     i,
			Start:     offset,
			End:       offset + w,
			State:     s.State,
			Separator: i,
		})
		offset += w
	}
	return spans
}
