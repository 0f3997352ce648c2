package kafka

// Kafka headers, которые добавляются к каждому событию.
const (
	HeaderEventID   = "x-event-id"
	HeaderEventType = "x-event-type"
)

// namedEvent реализуют события, которые знают свой тип.
type namedEvent interface {
	EventName() string
}

func eventTypeOf(payload any) string {
	if named, ok := payload.(namedEvent); ok {
		return named.EventName()
	}
	return ""
}
