package trade

// Event is a discrete front-end event delivered to the capture machine.
type Event interface {
	// Type names the event for logging.
	Type() string
}

// StartNewTrade begins a new capture, discarding any previous session.
type StartNewTrade struct{}

func (StartNewTrade) Type() string { return "start_new_trade" }

// ImageReceived carries the front-end file reference of one screenshot.
type ImageReceived struct {
	Ref string
}

func (ImageReceived) Type() string { return "image_received" }

// DoneSignal ends screenshot collection.
type DoneSignal struct{}

func (DoneSignal) Type() string { return "done_signal" }

// VoiceReceived carries the front-end file reference of a voice message.
type VoiceReceived struct {
	Ref string
}

func (VoiceReceived) Type() string { return "voice_received" }

// TextReceived carries a typed trade description.
type TextReceived struct {
	Text string
}

func (TextReceived) Type() string { return "text_received" }

// CancelSignal discards the in-progress session.
type CancelSignal struct{}

func (CancelSignal) Type() string { return "cancel_signal" }
