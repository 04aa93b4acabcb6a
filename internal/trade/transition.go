package trade

// step is the side-effecting action the machine runs after a transition.
type step int

const (
	stepNone step = iota
	stepReset
	stepAppendImage
	stepRejectEmpty
	stepFinalize
	stepTranscribe
	stepDescribe
	stepCancel
)

func (s step) String() string {
	switch s {
	case stepNone:
		return "none"
	case stepReset:
		return "reset"
	case stepAppendImage:
		return "append_image"
	case stepRejectEmpty:
		return "reject_empty"
	case stepFinalize:
		return "finalize"
	case stepTranscribe:
		return "transcribe"
	case stepDescribe:
		return "describe"
	case stepCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// transition is the pure decision function of the capture machine: given the
// current phase, the event and the number of collected screenshots it
// returns the phase to move to and the step to run. The returned phase is
// reached only when the step succeeds; a failed step may divert the session
// back to idle.
func transition(phase Phase, ev Event, imageCount int) (Phase, step) {
	switch ev.(type) {
	case CancelSignal:
		return PhaseIdle, stepCancel
	case StartNewTrade:
		return PhaseCollectingScreenshots, stepReset
	case ImageReceived:
		if phase == PhaseCollectingScreenshots {
			return PhaseCollectingScreenshots, stepAppendImage
		}
	case DoneSignal:
		if phase == PhaseCollectingScreenshots {
			if imageCount == 0 {
				return PhaseCollectingScreenshots, stepRejectEmpty
			}
			return PhaseAwaitingTradeInfo, stepFinalize
		}
	case VoiceReceived:
		if phase == PhaseAwaitingTradeInfo {
			return PhaseAwaitingTradeInfo, stepTranscribe
		}
	case TextReceived:
		if phase == PhaseAwaitingTradeInfo {
			return PhaseAwaitingTradeInfo, stepDescribe
		}
	}
	return phase, stepNone
}
