package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	boterrors "github.com/trademind/assistant/internal/errors"
	"github.com/trademind/assistant/internal/trade"
	"github.com/trademind/assistant/plugin/collage"
	"github.com/trademind/assistant/plugin/extract"
	"github.com/trademind/assistant/plugin/speech"
)

// composerAdapter bridges the collage plugin to the trade machine and
// classifies its failures into pipeline error codes.
type composerAdapter struct{}

func (composerAdapter) Compose(images [][]byte, header *trade.Header) ([]byte, error) {
	var h *collage.TradeHeader
	if header != nil {
		h = &collage.TradeHeader{
			Asset:    header.Asset,
			Scenario: header.Scenario,
			Date:     header.Date,
		}
	}

	out, err := collage.Compose(images, h)
	if err != nil {
		var decodeErr *collage.DecodeError
		switch {
		case errors.As(err, &decodeErr):
			return nil, boterrors.ImageDecodeFailed(
				fmt.Sprintf("screenshot #%d is unreadable", decodeErr.Index+1), err)
		case errors.Is(err, collage.ErrNoImages):
			return nil, boterrors.ValidationFailed("no screenshots to compose")
		default:
			return nil, boterrors.CompositionFailed("collage stitching failed", err)
		}
	}
	return out, nil
}

// extractorAdapter maps the extractor's trade record onto the machine's
// header type, preserving the nil-record "nothing usable" outcome.
type extractorAdapter struct {
	inner *extract.Extractor
}

func (a extractorAdapter) Extract(ctx context.Context, text string) (*trade.Header, error) {
	info, err := a.inner.Extract(ctx, text)
	if err != nil || info == nil {
		return nil, err
	}
	return &trade.Header{
		Asset:    info.Asset,
		Scenario: info.Scenario,
		Date:     info.Date,
	}, nil
}

// speechAdapter classifies recognition failures into pipeline error codes.
type speechAdapter struct {
	inner *speech.Transcriber
}

func (a speechAdapter) Transcribe(ctx context.Context, audio []byte) (string, error) {
	text, err := a.inner.Transcribe(ctx, audio)
	if err != nil {
		return "", boterrors.TranscriptionFailed("speech recognition failed", err)
	}
	return text, nil
}
