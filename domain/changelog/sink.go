package changelog

// Sink receives committed change entries, in sequence order.
// infra/changestore implementations durably persist them; tests use
// in-memory sinks.
type Sink interface {
	Append(e *Entry) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e *Entry) error

func (f SinkFunc) Append(e *Entry) error { return f(e) }
