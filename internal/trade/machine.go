package trade

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	boterrors "github.com/trademind/assistant/internal/errors"
	"github.com/trademind/assistant/internal/observability"
)

// downloadConcurrency caps how many screenshots are fetched at once during
// finalization. The stored order always matches the upload order.
const downloadConcurrency = 4

// Header is the extracted trade record used to label the composite.
type Header struct {
	Asset    string
	Scenario string
	Date     string
}

// FileFetcher downloads the bytes behind a front-end file reference.
type FileFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Transcriber turns voice-message audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Extractor produces a trade record from a free-form description.
// A nil record with a nil error means extraction produced nothing usable;
// the user may retry with a better description.
type Extractor interface {
	Extract(ctx context.Context, text string) (*Header, error)
}

// Composer stitches the collected screenshots, optionally labeled with a
// header, into a single image.
type Composer interface {
	Compose(images [][]byte, header *Header) ([]byte, error)
}

// Keyboard is a transport-neutral hint for which reply keyboard the front
// end should attach to a message.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMain
	KeyboardDoneCancel
	KeyboardCancel
)

// Placeholder is the handle of a previously sent "processing" message.
type Placeholder interface {
	Edit(ctx context.Context, text string) error
	Delete(ctx context.Context) error
}

// Responder is the front-end boundary the machine replies through.
type Responder interface {
	SendText(ctx context.Context, userID int64, text string, kb Keyboard) error
	SendPhoto(ctx context.Context, userID int64, filename string, data []byte, caption string) error
	SendProcessing(ctx context.Context, userID int64, text string) (Placeholder, error)
}

// Deps are the machine's collaborators.
type Deps struct {
	Files     FileFetcher
	Speech    Transcriber
	Extractor Extractor
	Composer  Composer
	Responder Responder
	Logger    *slog.Logger
}

// Machine drives the capture conversation: it applies the pure transition
// function to each incoming event and executes the resulting step, catching
// every step failure at its boundary.
type Machine struct {
	store *SessionStore
	deps  Deps
}

// NewMachine creates a capture machine over the given session store.
func NewMachine(store *SessionStore, deps Deps) *Machine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Machine{store: store, deps: deps}
}

// Reset silently drops the user's session (used by /start).
func (m *Machine) Reset(userID int64) {
	m.store.Clear(userID)
}

// Phase returns the user's current conversation phase.
func (m *Machine) Phase(userID int64) Phase {
	return m.store.Get(userID).Phase
}

// HandleEvent processes one front-end event for one user. It never panics
// outward: unexpected failures are logged and answered with a generic
// apology so one user's session cannot take down the conversation loop.
func (m *Machine) HandleEvent(ctx context.Context, userID int64, ev Event) {
	log := observability.NewEventContext(m.deps.Logger, ev.Type(), userID)

	defer func() {
		if r := recover(); r != nil {
			err := boterrors.Internal("panic while handling event", fmt.Errorf("%v", r))
			m.logStepFailure(log, "event handling panicked", err, boterrors.ErrCodeInternal)
			_ = m.deps.Responder.SendText(ctx, userID, msgInternalError, KeyboardMain)
		}
	}()

	sess := m.store.Get(userID)
	next, st := transition(sess.Phase, ev, len(sess.PhotoRefs))
	log.Debug("transition",
		slog.String(observability.LogFieldPhase, sess.Phase.String()),
		slog.String("next_phase", next.String()),
		slog.String("step", st.String()))

	switch st {
	case stepReset:
		m.startNewTrade(ctx, log, userID)
	case stepAppendImage:
		m.appendImage(ctx, log, sess, ev.(ImageReceived))
	case stepRejectEmpty:
		log.Info("done signal with no screenshots")
		m.send(ctx, log, sess.UserID, msgNoScreenshots, KeyboardDoneCancel)
	case stepFinalize:
		m.finalize(ctx, log, sess)
	case stepTranscribe:
		m.describeVoice(ctx, log, sess, ev.(VoiceReceived))
	case stepDescribe:
		m.describe(ctx, log, sess, ev.(TextReceived).Text)
	case stepCancel:
		m.cancel(ctx, log, sess)
	case stepNone:
		log.Debug("event ignored in current phase")
	}
}

func (m *Machine) startNewTrade(ctx context.Context, log *observability.EventContext, userID int64) {
	sess := m.store.Reset(userID)
	sess.Phase = PhaseCollectingScreenshots
	log.Info("new trade started")
	m.send(ctx, log, userID, msgNewTrade, KeyboardDoneCancel)
}

func (m *Machine) appendImage(ctx context.Context, log *observability.EventContext, sess *Session, ev ImageReceived) {
	sess.PhotoRefs = append(sess.PhotoRefs, ev.Ref)
	log.Info("screenshot collected", slog.Int("count", len(sess.PhotoRefs)))
	m.send(ctx, log, sess.UserID, fmt.Sprintf(msgScreenshotReceived, len(sess.PhotoRefs)), KeyboardDoneCancel)
}

// finalize downloads the collected screenshots, sends a header-less preview
// collage and moves the session to the description phase. Download and
// composition failures abort the session back to idle.
func (m *Machine) finalize(ctx context.Context, log *observability.EventContext, sess *Session) {
	log.Info("screenshot collection finished", slog.Int("count", len(sess.PhotoRefs)))

	placeholder, err := m.deps.Responder.SendProcessing(ctx, sess.UserID, msgCreatingCollage)
	if err != nil {
		log.Warn("processing placeholder not sent", slog.String("error", err.Error()))
		placeholder = nil
	}

	images, err := m.downloadAll(ctx, sess.PhotoRefs)
	if err != nil {
		m.logStepFailure(log, "screenshot download failed", err, boterrors.ErrCodeTransportFailed)
		m.abort(ctx, log, sess, placeholder, msgDownloadFailed)
		return
	}
	sess.Images = images

	preview, err := m.deps.Composer.Compose(images, nil)
	if err != nil {
		m.logStepFailure(log, "collage creation failed", err, boterrors.ErrCodeCompositionFailed)
		m.abort(ctx, log, sess, placeholder, msgCollageFailed)
		return
	}

	if err := m.deps.Responder.SendPhoto(ctx, sess.UserID, CollageFilename, preview, fmt.Sprintf(msgCollageReady, len(images))); err != nil {
		m.logStepFailure(log, "preview delivery failed", err, boterrors.ErrCodeTransportFailed)
		m.abort(ctx, log, sess, placeholder, msgDeliveryFailed)
		return
	}
	if placeholder != nil {
		_ = placeholder.Delete(ctx)
	}

	sess.Phase = PhaseAwaitingTradeInfo
	m.send(ctx, log, sess.UserID, msgDescribeTrade, KeyboardCancel)
}

// downloadAll fetches every screenshot, a few at a time, preserving the
// upload order in the result.
func (m *Machine) downloadAll(ctx context.Context, refs []string) ([][]byte, error) {
	images := make([][]byte, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			data, err := m.deps.Files.Fetch(gctx, ref)
			if err != nil {
				return boterrors.TransportFailed(fmt.Sprintf("download screenshot #%d", i+1), err)
			}
			images[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// describeVoice transcribes the voice message and feeds the text into the
// extraction sub-flow. Transcription failures are recoverable: the session
// and its images stay intact.
func (m *Machine) describeVoice(ctx context.Context, log *observability.EventContext, sess *Session, ev VoiceReceived) {
	audio, err := m.deps.Files.Fetch(ctx, ev.Ref)
	if err != nil {
		m.logStepFailure(log, "voice download failed", err, boterrors.ErrCodeTranscriptionFailed)
		m.send(ctx, log, sess.UserID, msgTranscriptionFailed, KeyboardCancel)
		return
	}

	text, err := m.deps.Speech.Transcribe(ctx, audio)
	if err != nil {
		m.logStepFailure(log, "transcription failed", err, boterrors.ErrCodeTranscriptionFailed)
		m.send(ctx, log, sess.UserID, msgTranscriptionFailed, KeyboardCancel)
		return
	}
	if text == "" {
		log.Info("no speech detected")
		m.send(ctx, log, sess.UserID, msgNoSpeechDetected, KeyboardCancel)
		return
	}

	m.send(ctx, log, sess.UserID, fmt.Sprintf(msgTranscribed, text), KeyboardCancel)
	m.describe(ctx, log, sess, text)
}

// describe runs the extraction sub-flow: extract a record, compose the final
// labeled collage and deliver it. Extraction failure keeps the session alive
// for a retry; composition and delivery failures abort to idle.
func (m *Machine) describe(ctx context.Context, log *observability.EventContext, sess *Session, text string) {
	header, err := m.deps.Extractor.Extract(ctx, text)
	if err != nil {
		m.logStepFailure(log, "extraction failed", err, boterrors.ErrCodeExtractionFailed)
	}
	if header == nil {
		log.Info("extraction produced no record, keeping session for retry")
		m.send(ctx, log, sess.UserID, msgExtractionFailed, KeyboardCancel)
		return
	}

	collage, err := m.deps.Composer.Compose(sess.Images, header)
	if err != nil {
		m.logStepFailure(log, "final composition failed", err, boterrors.ErrCodeCompositionFailed)
		m.send(ctx, log, sess.UserID, msgCollageFailed, KeyboardMain)
		m.store.Clear(sess.UserID)
		return
	}

	caption := fmt.Sprintf(msgTradeCaption, header.Asset, header.Scenario, header.Date)
	if err := m.deps.Responder.SendPhoto(ctx, sess.UserID, CollageFilename, collage, caption); err != nil {
		m.logStepFailure(log, "composite delivery failed", err, boterrors.ErrCodeTransportFailed)
		m.send(ctx, log, sess.UserID, msgDeliveryFailed, KeyboardMain)
		m.store.Clear(sess.UserID)
		return
	}

	sess.Phase = PhaseDone
	log.Info("trade captured",
		slog.String("asset", header.Asset),
		slog.Int64(observability.LogFieldDuration, log.DurationMs()))
	m.store.Clear(sess.UserID)
	m.send(ctx, log, sess.UserID, msgTradeSaved, KeyboardMain)
}

func (m *Machine) cancel(ctx context.Context, log *observability.EventContext, sess *Session) {
	hadWork := sess.Phase != PhaseIdle
	m.store.Clear(sess.UserID)

	if hadWork {
		log.Info("session canceled", slog.String(observability.LogFieldPhase, sess.Phase.String()))
		m.send(ctx, log, sess.UserID, msgCanceled, KeyboardMain)
		return
	}
	m.send(ctx, log, sess.UserID, msgNothingToCancel, KeyboardMain)
}

// abort reports a fatal step failure through the placeholder when one
// exists and discards the session.
func (m *Machine) abort(ctx context.Context, log *observability.EventContext, sess *Session, placeholder Placeholder, message string) {
	if placeholder != nil {
		if err := placeholder.Edit(ctx, message); err != nil {
			m.send(ctx, log, sess.UserID, message, KeyboardMain)
		}
	} else {
		m.send(ctx, log, sess.UserID, message, KeyboardMain)
	}
	m.store.Clear(sess.UserID)
}

func (m *Machine) send(ctx context.Context, log *observability.EventContext, userID int64, text string, kb Keyboard) {
	if err := m.deps.Responder.SendText(ctx, userID, text, kb); err != nil {
		log.Warn("reply not delivered", slog.String("error", err.Error()))
	}
}

func (m *Machine) logStepFailure(log *observability.EventContext, msg string, err error, defaultCode boterrors.ErrorCode) {
	log.Error(msg, err,
		slog.String(observability.LogFieldErrorCode, string(boterrors.CodeOf(err, defaultCode))))
}
