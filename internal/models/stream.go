package models

// StreamEvent is the closed set of events the chat relay emits over its
// text/event-stream response. Every event carries a "type" discriminator so
// the browser can switch on it; new kinds must be added here, nowhere else.
type StreamEvent interface {
	streamEvent()
}

// StartEvent opens a turn and reserves the assistant message id(s) so the
// client can correlate fragments before the final message is persisted.
type StartEvent struct {
	Type                string `json:"type"`
	MessageID           string `json:"messageId"`
	ComparisonMessageID string `json:"comparisonMessageId,omitempty"`
}

// ContentEvent carries one incremental text fragment from the primary model.
type ContentEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Model   string `json:"model"`
}

// ComparisonStartEvent marks the switch to the second model's stream.
type ComparisonStartEvent struct {
	Type string `json:"type"`
}

// ComparisonContentEvent carries one fragment from the comparison model.
type ComparisonContentEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Model   string `json:"model"`
}

// DoneEvent terminates a successful turn. Nothing follows it.
type DoneEvent struct {
	Type string `json:"type"`
}

// ErrorEvent terminates a failed turn. Nothing follows it, and no DoneEvent
// is emitted after it.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (StartEvent) streamEvent()             {}
func (ContentEvent) streamEvent()           {}
func (ComparisonStartEvent) streamEvent()   {}
func (ComparisonContentEvent) streamEvent() {}
func (DoneEvent) streamEvent()              {}
func (ErrorEvent) streamEvent()             {}

// Constructors keep the type discriminators in one place.

func NewStartEvent(messageID, comparisonMessageID string) StartEvent {
	return StartEvent{Type: "start", MessageID: messageID, ComparisonMessageID: comparisonMessageID}
}

func NewContentEvent(model, content string) ContentEvent {
	return ContentEvent{Type: "content", Content: content, Model: model}
}

func NewComparisonStartEvent() ComparisonStartEvent {
	return ComparisonStartEvent{Type: "comparisonStart"}
}

func NewComparisonContentEvent(model, content string) ComparisonContentEvent {
	return ComparisonContentEvent{Type: "comparisonContent", Content: content, Model: model}
}

func NewDoneEvent() DoneEvent {
	return DoneEvent{Type: "done"}
}

func NewErrorEvent(msg string) ErrorEvent {
	return ErrorEvent{Type: "error", Error: msg}
}
