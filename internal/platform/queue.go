package platform

// eventQueue collects callback events between polls. A framebuffer resize is
// held back and delivered last in its batch, after any logical resize, so a
// consumer applying both in order ends on the pixel size. Repeated pixel
// size changes within one poll collapse to the latest.
type eventQueue struct {
	events []Event
	pixel  Event
	resize bool
}

func (q *eventQueue) push(ev Event) {
	if ev.Type == EventWindowPixelSizeChanged {
		q.pixel = ev
		q.resize = true
		return
	}
	q.events = append(q.events, ev)
}

// drain returns the batch and empties the queue.
func (q *eventQueue) drain() []Event {
	events := q.events
	if q.resize {
		events = append(events, q.pixel)
	}
	q.events = nil
	q.resize = false
	return events
}
