package trade

// Phase is the conversation phase of a capture session. Exactly one phase is
// active at a time; transitions happen only through the machine.
type Phase int

const (
	// PhaseIdle means no capture is in progress.
	PhaseIdle Phase = iota
	// PhaseCollectingScreenshots means the user is uploading screenshots.
	PhaseCollectingScreenshots
	// PhaseAwaitingTradeInfo means the screenshots are stored and the user
	// owes a voice or text description.
	PhaseAwaitingTradeInfo
	// PhaseDone marks a completed submission just before the session is
	// cleared.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCollectingScreenshots:
		return "collecting_screenshots"
	case PhaseAwaitingTradeInfo:
		return "awaiting_trade_info"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
