package composer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/TGartman/SSC/internal/entity"
	"github.com/disintegration/imaging"
)

type Placement string

const (
	PlacementBottomRight Placement = "bottom_right"
	PlacementBottomLeft  Placement = "bottom_left"
	PlacementTopRight    Placement = "top_right"
	PlacementTopLeft     Placement = "top_left"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

type Canvas struct {
	Width  int
	Height int
}

type Text struct {
	Headline string
	Subhead  string
	CTA      string
}

func (t Text) empty() bool {
	return t.Headline == "" && t.Subhead == "" && t.CTA == ""
}

type Style struct {
	SafePaddingPx   int
	LogoMaxWidthPct float64
	LogoPlacement   Placement
	TextAlign       Align
}

func DefaultStyle() Style {
	return Style{
		SafePaddingPx:   64,
		LogoMaxWidthPct: 16,
		LogoPlacement:   PlacementBottomRight,
		TextAlign:       AlignLeft,
	}
}

func (s Style) validate() error {
	switch s.LogoPlacement {
	case PlacementBottomRight, PlacementBottomLeft, PlacementTopRight, PlacementTopLeft:
	default:
		return fmt.Errorf("%w: unsupported logoPlacement %q", entity.ErrBadRequest, s.LogoPlacement)
	}
	switch s.TextAlign {
	case AlignLeft, AlignCenter:
	default:
		return fmt.Errorf("%w: unsupported textAlign %q", entity.ErrBadRequest, s.TextAlign)
	}
	if s.SafePaddingPx < 0 {
		return fmt.Errorf("%w: safePaddingPx must be non-negative", entity.ErrBadRequest)
	}
	if s.LogoMaxWidthPct < 0 || s.LogoMaxWidthPct > 100 {
		return fmt.Errorf("%w: logoMaxWidthPct must be between 0 and 100", entity.ErrBadRequest)
	}
	return nil
}

// Spec is everything Compose needs: decoded-able image bytes, text and style.
// Compose performs no I/O.
type Spec struct {
	Canvas     Canvas
	Background []byte
	Logo       []byte
	Text       Text
	Style      Style
}

type Result struct {
	PNG    []byte
	Width  int
	Height int
}

// Compose renders a branded post onto a canvas of exactly the requested size.
// Layer order is fixed: cover-cropped background, readability gradient, text,
// logo on top. Deterministic for identical inputs.
func Compose(spec Spec) (*Result, error) {
	w, h := spec.Canvas.Width, spec.Canvas.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas dimensions must be positive", entity.ErrBadRequest)
	}
	if err := spec.Style.validate(); err != nil {
		return nil, err
	}

	src, err := imaging.Decode(bytes.NewReader(spec.Background))
	if err != nil {
		return nil, fmt.Errorf("%w: background: %v", entity.ErrDecode, err)
	}

	// Cover policy: scale uniformly until both axes are covered, center-crop
	// the overflow. Never letterboxes or distorts.
	canvas := imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)

	canvas = imaging.Overlay(canvas, readabilityGradient(w, h), image.Pt(0, 0), 1.0)

	if !spec.Text.empty() {
		if err := drawTextLayer(canvas, spec.Text, spec.Style, w, h); err != nil {
			return nil, err
		}
	}

	if len(spec.Logo) > 0 {
		maxLogoWidth := int(math.Round(spec.Style.LogoMaxWidthPct / 100 * float64(w)))
		if maxLogoWidth > 0 {
			logo, err := imaging.Decode(bytes.NewReader(spec.Logo))
			if err != nil {
				return nil, fmt.Errorf("%w: logo: %v", entity.ErrDecode, err)
			}
			// Downscale to the cap, never enlarge past native resolution.
			if logo.Bounds().Dx() > maxLogoWidth {
				logo = imaging.Resize(logo, maxLogoWidth, 0, imaging.Lanczos)
			}
			pos := logoPosition(spec.Style.LogoPlacement, w, h,
				logo.Bounds().Dx(), logo.Bounds().Dy(), spec.Style.SafePaddingPx)
			canvas = imaging.Overlay(canvas, logo, pos, 1.0)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &Result{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

func logoPosition(placement Placement, w, h, logoW, logoH, pad int) image.Point {
	switch placement {
	case PlacementBottomLeft:
		return image.Pt(pad, h-pad-logoH)
	case PlacementTopRight:
		return image.Pt(w-pad-logoW, pad)
	case PlacementTopLeft:
		return image.Pt(pad, pad)
	default:
		return image.Pt(w-pad-logoW, h-pad-logoH)
	}
}
