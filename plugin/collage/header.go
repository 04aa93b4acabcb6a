package collage

import (
	"image"

	"github.com/fogleman/gg"
)

// Header band geometry.
const (
	// HeaderHeight is the fixed height of the header band in pixels.
	HeaderHeight = 110

	edgePadding = 30

	titleCenterY  = 30
	detailCenterY = 78

	pillRadius     = 8
	pillPaddingX   = 20
	pillExtraYSize = 16
)

// addHeader renders the trade details onto a dark band above the stitched
// collage. Layout: title centered on the first line; second line carries the
// "Scenario" label on the left, the scenario value centered in a rounded
// pill, and the date right-aligned.
func addHeader(collage *image.NRGBA, header *TradeHeader) image.Image {
	width := collage.Bounds().Dx()
	height := collage.Bounds().Dy()

	dc := gg.NewContext(width, height+HeaderHeight)
	dc.SetRGB255(18, 18, 24)
	dc.Clear()
	dc.DrawImage(collage, 0, HeaderHeight)

	faces := headerFonts()

	// Line 1: title, centered.
	dc.SetFontFace(faces.title)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored("Trade "+header.Asset, float64(width)/2, titleCenterY, 0.5, 0.5)

	// Line 2, left: fixed label.
	dc.SetFontFace(faces.label)
	dc.DrawStringAnchored("Scenario", edgePadding, detailCenterY, 0, 0.5)

	// Line 2, center: scenario value in a rounded pill.
	dc.SetFontFace(faces.value)
	textWidth, textHeight := dc.MeasureString(header.Scenario)
	boxWidth := textWidth + 2*pillPaddingX
	boxHeight := textHeight + pillExtraYSize
	boxX := (float64(width) - boxWidth) / 2
	boxY := detailCenterY - boxHeight/2

	dc.SetRGB255(45, 45, 55)
	dc.DrawRoundedRectangle(boxX, boxY, boxWidth, boxHeight, pillRadius)
	dc.Fill()

	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(header.Scenario, boxX+boxWidth/2, detailCenterY, 0.5, 0.5)

	// Line 2, right: date.
	dc.SetFontFace(faces.label)
	dc.DrawStringAnchored("Date "+header.Date, float64(width)-edgePadding, detailCenterY, 1, 0.5)

	return dc.Image()
}
