package events

// EventCollector is embedded in aggregates to buffer the events raised by
// state transitions until the application layer drains them for publishing.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers an event.
func (c *EventCollector) Record(event DomainEvent) {
	c.pending = append(c.pending, event)
}

// Drain returns the buffered events and empties the buffer.
func (c *EventCollector) Drain() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
