package composer

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	headlineFontSize = 64
	subheadFontSize  = 36
	ctaFontSize      = 28

	headlineBaselineOffset = 80
	subheadBaselineOffset  = 140
	ctaBaselineOffset      = 30
)

var (
	fontOnce    sync.Once
	boldFont    *opentype.Font
	regularFont *opentype.Font
	fontErr     error
)

// loadFonts parses the embedded Go fonts once.
func loadFonts() (*opentype.Font, *opentype.Font, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse embedded bold font: %w", fontErr)
			return
		}
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse embedded regular font: %w", fontErr)
		}
	})
	if fontErr != nil {
		return nil, nil, fontErr
	}
	return boldFont, regularFont, nil
}

// drawTextLayer draws up to three lines directly onto dst. Empty strings are
// skipped entirely, so an all-empty Text leaves dst untouched. The glyphs are
// rasterized straight from font data; user text never passes through any
// markup, so characters like <, > or & are just glyphs.
func drawTextLayer(dst *image.NRGBA, txt Text, style Style, w, h int) error {
	bold, regular, err := loadFonts()
	if err != nil {
		return err
	}

	lines := []struct {
		text     string
		fnt      *opentype.Font
		size     float64
		baseline int
	}{
		{txt.Headline, bold, headlineFontSize, style.SafePaddingPx + headlineBaselineOffset},
		{txt.Subhead, regular, subheadFontSize, style.SafePaddingPx + subheadBaselineOffset},
		{txt.CTA, regular, ctaFontSize, h - style.SafePaddingPx - ctaBaselineOffset},
	}

	for _, line := range lines {
		if line.text == "" {
			continue
		}
		face, err := opentype.NewFace(line.fnt, &opentype.FaceOptions{
			Size:    line.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("create font face: %w", err)
		}

		x := style.SafePaddingPx
		if style.TextAlign == AlignCenter {
			width := (&font.Drawer{Face: face}).MeasureString(line.text).Ceil()
			x = (w - width) / 2
		}

		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(color.White),
			Face: face,
			Dot:  fixed.P(x, line.baseline),
		}
		d.DrawString(line.text)
		face.Close()
	}

	return nil
}
