package composer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/TGartman/SSC/internal/entity"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG renders a solid-color image to PNG bytes.
func encodePNG(t *testing.T, width, height int, c color.NRGBA) []byte {
	t.Helper()
	img := imaging.New(width, height, c)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return imaging.Clone(img)
}

func isRed(c color.NRGBA) bool {
	return c.R > 200 && c.G < 50 && c.B < 50
}

func isBright(c color.NRGBA) bool {
	return c.R > 200 && c.G > 200 && c.B > 200
}

// TestComposeCanvasExactness checks that the output always matches the
// requested canvas, whatever the source aspect ratio.
func TestComposeCanvasExactness(t *testing.T) {
	presets := []struct {
		name          string
		width, height int
	}{
		{"square_1080", 1080, 1080},
		{"portrait_1080", 1080, 1350},
		{"story_1080", 1080, 1920},
	}
	sources := []struct {
		name          string
		width, height int
	}{
		{"4:3 landscape", 800, 600},
		{"1:1 square", 500, 500},
		{"9:16 portrait", 540, 960},
	}

	for _, preset := range presets {
		for _, src := range sources {
			t.Run(preset.name+"/"+src.name, func(t *testing.T) {
				background := encodePNG(t, src.width, src.height, color.NRGBA{R: 40, G: 90, B: 160, A: 255})

				result, err := Compose(Spec{
					Canvas:     Canvas{Width: preset.width, Height: preset.height},
					Background: background,
					Style:      DefaultStyle(),
				})

				require.NoError(t, err)
				assert.Equal(t, preset.width, result.Width)
				assert.Equal(t, preset.height, result.Height)

				out := decodePNG(t, result.PNG)
				assert.Equal(t, preset.width, out.Bounds().Dx())
				assert.Equal(t, preset.height, out.Bounds().Dy())
			})
		}
	}
}

// TestComposeLogoWorkedExample pins the documented geometry: canvas 1080x1080,
// padding 64, cap 16% -> max width 173; a 300x120 logo is downscaled to
// 173x69 and placed at (843, 947).
func TestComposeLogoWorkedExample(t *testing.T) {
	background := encodePNG(t, 1080, 1080, color.NRGBA{A: 255})
	logo := encodePNG(t, 300, 120, color.NRGBA{R: 255, A: 255})

	result, err := Compose(Spec{
		Canvas:     Canvas{Width: 1080, Height: 1080},
		Background: background,
		Logo:       logo,
		Style:      DefaultStyle(),
	})
	require.NoError(t, err)

	out := decodePNG(t, result.PNG)

	// inside all four corners of the expected logo rect
	assert.True(t, isRed(out.NRGBAAt(843, 947)), "logo top-left corner")
	assert.True(t, isRed(out.NRGBAAt(1015, 947)), "logo top-right corner")
	assert.True(t, isRed(out.NRGBAAt(843, 1015)), "logo bottom-left corner")
	assert.True(t, isRed(out.NRGBAAt(1015, 1015)), "logo bottom-right corner")

	// just outside the rect
	assert.False(t, isRed(out.NRGBAAt(842, 947)), "left of logo")
	assert.False(t, isRed(out.NRGBAAt(843, 946)), "above logo")
	assert.False(t, isRed(out.NRGBAAt(1016, 1015)), "right of logo")
}

// TestComposeLogoNeverUpscaled keeps a logo smaller than the cap at its
// native size.
func TestComposeLogoNeverUpscaled(t *testing.T) {
	background := encodePNG(t, 1080, 1080, color.NRGBA{A: 255})
	logo := encodePNG(t, 100, 40, color.NRGBA{R: 255, A: 255})

	result, err := Compose(Spec{
		Canvas:     Canvas{Width: 1080, Height: 1080},
		Background: background,
		Logo:       logo,
		Style:      DefaultStyle(),
	})
	require.NoError(t, err)

	out := decodePNG(t, result.PNG)

	// native 100x40 at (1080-64-100, 1080-64-40) = (916, 976)
	assert.True(t, isRed(out.NRGBAAt(916, 976)))
	assert.True(t, isRed(out.NRGBAAt(1015, 1015)))
	assert.False(t, isRed(out.NRGBAAt(915, 976)))
	assert.False(t, isRed(out.NRGBAAt(916, 975)))
}

// TestComposeLogoWidthCap downsizes an oversized logo to exactly the cap.
func TestComposeLogoWidthCap(t *testing.T) {
	background := encodePNG(t, 1080, 1080, color.NRGBA{A: 255})
	logo := encodePNG(t, 2000, 500, color.NRGBA{R: 255, A: 255})

	result, err := Compose(Spec{
		Canvas:     Canvas{Width: 1080, Height: 1080},
		Background: background,
		Logo:       logo,
		Style:      DefaultStyle(),
	})
	require.NoError(t, err)

	out := decodePNG(t, result.PNG)

	// cap = round(16% of 1080) = 173, right edge pinned at 1080-64-1 = 1015
	row := 1015
	leftmost := -1
	for x := 0; x < 1080; x++ {
		if isRed(out.NRGBAAt(x, row)) {
			leftmost = x
			break
		}
	}
	assert.Equal(t, 843, leftmost, "logo left edge must honor the width cap")
	assert.True(t, isRed(out.NRGBAAt(1015, row)))
}

func TestComposeLogoPlacements(t *testing.T) {
	tests := []struct {
		placement Placement
		insideX   int
		insideY   int
	}{
		{PlacementBottomRight, 1015, 1015},
		{PlacementBottomLeft, 64, 1015},
		{PlacementTopRight, 1015, 64},
		{PlacementTopLeft, 64, 64},
	}

	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			background := encodePNG(t, 1080, 1080, color.NRGBA{A: 255})
			logo := encodePNG(t, 100, 40, color.NRGBA{R: 255, A: 255})

			style := DefaultStyle()
			style.LogoPlacement = tt.placement

			result, err := Compose(Spec{
				Canvas:     Canvas{Width: 1080, Height: 1080},
				Background: background,
				Logo:       logo,
				Style:      style,
			})
			require.NoError(t, err)

			out := decodePNG(t, result.PNG)
			assert.True(t, isRed(out.NRGBAAt(tt.insideX, tt.insideY)),
				"expected logo pixel at (%d,%d)", tt.insideX, tt.insideY)
		})
	}
}

// TestComposeZeroLogoWidth skips the logo layer entirely when the cap
// computes to zero.
func TestComposeZeroLogoWidth(t *testing.T) {
	background := encodePNG(t, 400, 400, color.NRGBA{A: 255})
	logo := encodePNG(t, 300, 120, color.NRGBA{R: 255, A: 255})

	style := DefaultStyle()
	style.LogoMaxWidthPct = 0

	result, err := Compose(Spec{
		Canvas:     Canvas{Width: 400, Height: 400},
		Background: background,
		Logo:       logo,
		Style:      style,
	})
	require.NoError(t, err)

	out := decodePNG(t, result.PNG)
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			if isRed(out.NRGBAAt(x, y)) {
				t.Fatalf("found logo pixel at (%d,%d) despite zero width cap", x, y)
			}
		}
	}
}

// TestComposeEmptyTextIdentity: all-empty text must be pixel-identical to a
// composition with no text layer at all, and composition is deterministic.
func TestComposeEmptyTextIdentity(t *testing.T) {
	background := encodePNG(t, 800, 600, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	logo := encodePNG(t, 200, 80, color.NRGBA{R: 255, A: 255})

	spec := Spec{
		Canvas:     Canvas{Width: 1080, Height: 1080},
		Background: background,
		Logo:       logo,
		Style:      DefaultStyle(),
	}

	withoutText, err := Compose(spec)
	require.NoError(t, err)

	spec.Text = Text{Headline: "", Subhead: "", CTA: ""}
	withEmptyText, err := Compose(spec)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(withoutText.PNG, withEmptyText.PNG),
		"empty text strings must not change a single pixel")

	again, err := Compose(spec)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(withEmptyText.PNG, again.PNG), "compose must be deterministic")
}

// TestComposeSpecialCharacters: markup-significant characters are ordinary
// glyphs and must never corrupt the render.
func TestComposeSpecialCharacters(t *testing.T) {
	background := encodePNG(t, 800, 600, color.NRGBA{R: 30, G: 60, B: 90, A: 255})

	result, err := Compose(Spec{
		Canvas:     Canvas{Width: 1080, Height: 1080},
		Background: background,
		Text: Text{
			Headline: `<Sale> & "Save"`,
			Subhead:  `50% off 'everything' <now>`,
			CTA:      "Shop & save >",
		},
		Style: DefaultStyle(),
	})

	require.NoError(t, err)
	out := decodePNG(t, result.PNG)
	assert.Equal(t, 1080, out.Bounds().Dx())
	assert.Equal(t, 1080, out.Bounds().Dy())
}

// brightSpan finds the leftmost and rightmost near-white pixels in the
// headline band.
func brightSpan(out *image.NRGBA, width, yMin, yMax int) (int, int) {
	minX, maxX := -1, -1
	for y := yMin; y <= yMax; y++ {
		for x := 0; x < width; x++ {
			if isBright(out.NRGBAAt(x, y)) {
				if minX == -1 || x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	return minX, maxX
}

func TestComposeTextAlign(t *testing.T) {
	background := encodePNG(t, 1080, 1080, color.NRGBA{A: 255})

	compose := func(align Align) *image.NRGBA {
		style := DefaultStyle()
		style.TextAlign = align
		result, err := Compose(Spec{
			Canvas:     Canvas{Width: 1080, Height: 1080},
			Background: background,
			Text:       Text{Headline: "HHHH"},
			Style:      style,
		})
		require.NoError(t, err)
		return decodePNG(t, result.PNG)
	}

	// headline baseline is pad+80 = 144; glyphs sit above it
	left := compose(AlignLeft)
	minX, _ := brightSpan(left, 1080, 100, 144)
	require.NotEqual(t, -1, minX, "headline must render")
	assert.InDelta(t, 64, minX, 12, "left align anchors at the safe padding")

	centered := compose(AlignCenter)
	minX, maxX := brightSpan(centered, 1080, 100, 144)
	require.NotEqual(t, -1, minX, "headline must render")
	assert.InDelta(t, 540, float64(minX+maxX)/2, 10, "center align anchors on the canvas midpoint")
}

func TestComposeValidation(t *testing.T) {
	background := encodePNG(t, 100, 100, color.NRGBA{A: 255})

	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr error
	}{
		{
			name:    "zero canvas",
			mutate:  func(s *Spec) { s.Canvas.Width = 0 },
			wantErr: entity.ErrBadRequest,
		},
		{
			name:    "corrupt background",
			mutate:  func(s *Spec) { s.Background = []byte("not an image") },
			wantErr: entity.ErrDecode,
		},
		{
			name:    "corrupt logo",
			mutate:  func(s *Spec) { s.Logo = []byte("not an image") },
			wantErr: entity.ErrDecode,
		},
		{
			name:    "unknown placement",
			mutate:  func(s *Spec) { s.Style.LogoPlacement = "middle" },
			wantErr: entity.ErrBadRequest,
		},
		{
			name:    "unknown align",
			mutate:  func(s *Spec) { s.Style.TextAlign = "justify" },
			wantErr: entity.ErrBadRequest,
		},
		{
			name:    "negative padding",
			mutate:  func(s *Spec) { s.Style.SafePaddingPx = -1 },
			wantErr: entity.ErrBadRequest,
		},
		{
			name:    "percentage above 100",
			mutate:  func(s *Spec) { s.Style.LogoMaxWidthPct = 120 },
			wantErr: entity.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Spec{
				Canvas:     Canvas{Width: 200, Height: 200},
				Background: background,
				Style:      DefaultStyle(),
			}
			tt.mutate(&spec)

			_, err := Compose(spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGradientAlpha(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0.0, 0.55},
		{0.35, 0.08},
		{0.70, 0.08},
		{1.0, 0.55},
		{0.175, 0.315},
		{0.5, 0.08},
		{0.85, 0.315},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, gradientAlphaAt(tt.t), 0.001, "t=%v", tt.t)
	}
}

func TestReadabilityGradientEdges(t *testing.T) {
	grad := readabilityGradient(10, 100)

	top := grad.NRGBAAt(5, 0)
	bottom := grad.NRGBAAt(5, 99)
	middle := grad.NRGBAAt(5, 50)

	assert.Equal(t, uint8(140), top.A, "top stop at ~55%")
	assert.Equal(t, uint8(140), bottom.A, "bottom stop at ~55%")
	assert.Equal(t, uint8(20), middle.A, "middle stays near transparent")
}
