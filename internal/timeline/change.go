package timeline

// Op names the mutation that produced a Change.
type Op string

const (
	OpReset  Op = "reset"
	OpStart  Op = "start"
	OpUpdate Op = "update"
	OpMax    Op = "max"
	OpPause  Op = "pause"
	OpResume Op = "resume"
	OpClose  Op = "close"
	OpRemove Op = "remove"
	OpLimit  Op = "limit"
)

// Change describes a mutation after it has been applied. Index is the
// affected segment; for OpRemove it is the index the segment occupied before
// removal, and Segment holds the removed value.
type Change struct {
	Op      Op
	Index   int
	Segment Segment
	Total   float64
	Count   int
}

type listener struct {
	id int
	fn func(Change)
}

// OnChange registers fn to be called after every applied mutation. Listeners
// run synchronously, in registration order, on the goroutine that mutated the
// timeline. The returned func unregisters fn.
func (t *Timeline) OnChange(fn func(Change)) (cancel func()) {
	t.nextListener++
	id := t.nextListener
	t.listeners = append(t.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range t.listeners {
			if l.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

func (t *Timeline) emit(op Op, index int, seg Segment) {
	c := Change{
		Op:      op,
		Index:   index,
		Segment: seg,
		Total:   t.CurrentDuration(),
		Count:   len(t.segments),
	}

	t.logger.Trace("timeline changed", "op", op, "index", index, "state", seg.State,
		"duration", seg.Duration, "total", c.Total, "count", c.Count)

	// Snapshot so a listener may cancel itself while being notified.
	ls := make([]listener, len(t.listeners))
	copy(ls, t.listeners)
	for _, l := range ls {
		l.fn(c)
	}
}
