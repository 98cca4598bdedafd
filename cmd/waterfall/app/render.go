package app

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/psrsim/psrsim/internal/dsp"
	"github.com/psrsim/psrsim/internal/storage"
)

const (
	dpi      = 96.0
	fontSize = 11.0

	// Border sizes in pixels
	topBorder    = 40
	leftBorder   = 90
	bottomBorder = 80
	rightBorder  = 40

	pixelsPerTimeLabel = 160
	pixelsPerFreqLabel = 60
	colorMapSize       = 256
	targetHeight       = 480
)

// Renderer draws a stored observation as a waterfall: time along X,
// polarizations or frequency channels along Y, intensity as color.
type Renderer struct {
	theme    ColorTheme
	maxWidth int
}

func NewRenderer(theme ColorTheme, maxWidth int) *Renderer {
	return &Renderer{theme: theme, maxWidth: maxWidth}
}

// Render produces the annotated waterfall image for a session.
func (r *Renderer) Render(sess *storage.Session, data [][]float64) (*image.RGBA, error) {
	width := sess.NumSamples
	if width > r.maxWidth {
		width = r.maxWidth
	}

	// Rebin long observations down to the pixel budget; the operator
	// preserves the mean level so the image stays calibrated.
	rows := data
	if width != sess.NumSamples {
		rows = make([][]float64, len(data))
		for i, row := range data {
			rows[i] = dsp.Rebin(row, width)
		}
	}

	cellH := targetHeight / len(rows)
	if cellH < 1 {
		cellH = 1
	}
	height := len(rows) * cellH

	fullWidth := width + leftBorder + rightBorder
	fullHeight := height + topBorder + bottomBorder
	img := image.NewRGBA(image.Rect(0, 0, fullWidth, fullHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	cm := newColorMap(colorMapSize, r.theme, computeBounds(rows))
	for y, row := range rows {
		for x, v := range row {
			c := cm.colorAt(v)
			for dy := 0; dy < cellH; dy++ {
				img.Set(leftBorder+x, topBorder+y*cellH+dy, c)
			}
		}
	}

	ann, err := newAnnotator()
	if err != nil {
		return nil, fmt.Errorf("creating annotator: %w", err)
	}
	if err = ann.annotate(img, sess, width, height); err != nil {
		return nil, fmt.Errorf("drawing annotations: %w", err)
	}

	return img, nil
}

type annotator struct {
	context *freetype.Context
}

func newAnnotator() (*annotator, error) {
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{context: ctx}, nil
}

func (a *annotator) annotate(img *image.RGBA, sess *storage.Session, width, height int) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	a.drawTimeScale(img, sess, width)
	a.drawRowScale(img, sess, height)
	a.drawInfo(img, sess)
	return nil
}

// drawTimeScale labels the X axis with elapsed observation time.
func (a *annotator) drawTimeScale(img *image.RGBA, sess *storage.Session, width int) {
	duration := float64(sess.NumSamples) * sess.DtSeconds

	count := width / pixelsPerTimeLabel
	if count < 2 {
		count = 2
	}
	for si := 0; si <= count; si++ {
		frac := float64(si) / float64(count)
		px := leftBorder + int(frac*float64(width))

		for i := topBorder - 6; i < topBorder; i++ {
			img.Set(px, i, image.Black)
		}

		t, suffix := humanize.ComputeSI(duration * frac)
		pt := freetype.Pt(px+3, topBorder-8)
		_, _ = a.context.DrawString(fmt.Sprintf("%0.1f %ss", t, suffix), pt)
	}
}

// drawRowScale labels the Y axis: sky frequency for filterbank data,
// polarization index for voltage data.
func (a *annotator) drawRowScale(img *image.RGBA, sess *storage.Session, height int) {
	count := height / pixelsPerFreqLabel
	if count < 1 {
		count = 1
	}
	if count > sess.NumRows {
		count = sess.NumRows
	}

	fMin := sess.FcentHz - sess.BandwidthHz/2
	for si := 0; si <= count; si++ {
		frac := float64(si) / float64(count)
		py := topBorder + int(frac*float64(height))

		for i := leftBorder - 6; i < leftBorder; i++ {
			img.Set(i, py, image.Black)
		}

		var label string
		if sess.Kind == "voltage" {
			label = fmt.Sprintf("pol %d", int(frac*float64(sess.NumRows)))
		} else {
			hz, suffix := humanize.ComputeSI(fMin + frac*sess.BandwidthHz)
			label = fmt.Sprintf("%0.1f %sHz", hz, suffix)
		}
		pt := freetype.Pt(4, py+4)
		_, _ = a.context.DrawString(label, pt)
	}
}

// drawInfo writes the session summary under the waterfall.
func (a *annotator) drawInfo(img *image.RGBA, sess *storage.Session) {
	duration, durationSuffix := humanize.ComputeSI(float64(sess.NumSamples) * sess.DtSeconds)
	dt, dtSuffix := humanize.ComputeSI(sess.DtSeconds)
	fcent, fcentSuffix := humanize.ComputeSI(sess.FcentHz)
	bw, bwSuffix := humanize.ComputeSI(sess.BandwidthHz)

	lines := []string{
		fmt.Sprintf("%s / %s, %s mode, noise %v", sess.Telescope, sess.System, sess.Mode, sess.Noise),
		fmt.Sprintf("Band: %0.1f %sHz, bandwidth %0.1f %sHz", fcent, fcentSuffix, bw, bwSuffix),
		fmt.Sprintf("%d x %d samples (%s, %s), dt = %0.3f %ss, span %0.1f %ss",
			sess.NumRows, sess.NumSamples, sess.Kind, sess.DType, dt, dtSuffix, duration, durationSuffix),
		"Observed: " + sess.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	}

	imgSize := img.Bounds().Size()
	pt := freetype.Pt(4, imgSize.Y-bottomBorder+16)
	for _, s := range lines {
		_, _ = a.context.DrawString(s, pt)
		pt.Y += a.context.PointToFixed(fontSize * 1.4)
	}
}
