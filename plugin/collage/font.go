package collage

import (
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Header font sizes in points.
const (
	titleFontSize = 36
	labelFontSize = 24
	valueFontSize = 26
)

// fontPaths is the ordered list of TrueType files probed for header text.
// A missing font is not an error, only a visual degradation.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:/Windows/Fonts/arial.ttf",
	"C:/Windows/Fonts/segoeui.ttf",
	"C:/Windows/Fonts/tahoma.ttf",
}

type fontSet struct {
	title font.Face
	label font.Face
	value font.Face
}

var (
	fontOnce sync.Once
	fonts    fontSet
)

// headerFonts resolves the header fonts once per process, so repeated
// composition of identical inputs stays byte-identical.
func headerFonts() fontSet {
	fontOnce.Do(func() {
		for _, path := range fontPaths {
			set, err := loadFontSet(path)
			if err != nil {
				continue
			}
			slog.Debug("header font resolved", "path", path)
			fonts = set
			return
		}
		slog.Warn("no TrueType font found, falling back to built-in face")
		face := basicfont.Face7x13
		fonts = fontSet{title: face, label: face, value: face}
	})
	return fonts
}

func loadFontSet(path string) (fontSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fontSet{}, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fontSet{}, err
	}

	var set fontSet
	for _, f := range []struct {
		face *font.Face
		size float64
	}{
		{&set.title, titleFontSize},
		{&set.label, labelFontSize},
		{&set.value, valueFontSize},
	} {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fontSet{}, err
		}
		*f.face = face
	}
	return set, nil
}
