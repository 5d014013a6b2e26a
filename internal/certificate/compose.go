package certificate

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/errgroup"

	"sanad/internal/i18n"
	"sanad/internal/platform/metrics"
	settingsmodels "sanad/internal/settings/models"
	studentmodels "sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
)

// Layout is defined on a 1122x794 canvas (A4 landscape at 96dpi) and
// rendered at renderScale so the exported page stays sharp in print.
const (
	baseWidth   = 1122
	baseHeight  = 794
	renderScale = 2.5
)

// Artifact is a composed certificate ready for export.
type Artifact struct {
	Image    image.Image
	RecordID string
	Lang     i18n.Lang
}

// Composer renders certificate artifacts from a record and the site
// settings. Rendering is pure given its inputs except for the issue-date
// stamp, which is the wall clock at composition time.
type Composer struct {
	fetcher  *AssetFetcher
	baseURL  string
	fontPath string
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type ComposerOption func(c *Composer)

func WithLogger(logger *slog.Logger) ComposerOption {
	return func(c *Composer) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ComposerOption {
	return func(c *Composer) {
		c.metrics = m
	}
}

// WithFontPath sets a TTF file used for all certificate text. Without one
// the built-in bitmap face is used, which cannot shape Bengali script.
func WithFontPath(path string) ComposerOption {
	return func(c *Composer) {
		c.fontPath = path
	}
}

// WithClock overrides the issue-date clock.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		c.now = now
	}
}

// NewComposer constructs a Composer. baseURL is the public origin encoded
// into verification QR codes.
func NewComposer(fetcher *AssetFetcher, baseURL string, opts ...ComposerOption) *Composer {
	c := &Composer{fetcher: fetcher, baseURL: baseURL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerificationURL returns the public deep link a certificate's QR code
// encodes.
func (c *Composer) VerificationURL(recordID string) string {
	return c.baseURL + "/certificate-verification?id=" + recordID
}

type assets struct {
	logo      image.Image
	signature image.Image
	photo     image.Image
}

// Compose renders the certificate for a record in one language.
//
// All referenced images are fetched up front, concurrently; any fetch
// failure aborts the whole composition. A certificate with a missing logo
// or signature would look forged, so a partial render is never returned.
func (c *Composer) Compose(ctx context.Context, record *studentmodels.Student, settings *settingsmodels.SiteSettings, lang i18n.Lang) (*Artifact, error) {
	a, err := c.fetchAssets(ctx, record, settings)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to prepare certificate assets")
	}

	qr, err := qrcode.New(c.VerificationURL(record.ID), qrcode.Medium)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to generate verification code")
	}

	img := c.render(record, settings, lang, a, qr)
	if c.metrics != nil {
		c.metrics.CertificatesComposed.Inc()
	}
	return &Artifact{Image: img, RecordID: record.ID, Lang: lang}, nil
}

func (c *Composer) fetchAssets(ctx context.Context, record *studentmodels.Student, settings *settingsmodels.SiteSettings) (*assets, error) {
	var a assets
	g, ctx := errgroup.WithContext(ctx)

	if settings.LogoURL != "" {
		g.Go(func() error {
			img, err := c.fetcher.FetchImage(ctx, settings.LogoURL)
			if err != nil {
				return fmt.Errorf("logo: %w", err)
			}
			a.logo = img
			return nil
		})
	}
	if settings.SignatureURL != "" {
		g.Go(func() error {
			img, err := c.fetcher.FetchImage(ctx, settings.SignatureURL)
			if err != nil {
				return fmt.Errorf("signature: %w", err)
			}
			a.signature = img
			return nil
		})
	}
	if record.ImageURL != "" {
		g.Go(func() error {
			img, err := c.fetcher.FetchImage(ctx, record.ImageURL)
			if err != nil {
				return fmt.Errorf("student photo: %w", err)
			}
			a.photo = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}

// s converts a base-layout measurement to render pixels.
func s(v float64) float64 { return v * renderScale }

func (c *Composer) face(points float64) font.Face {
	if c.fontPath != "" {
		if f, err := gg.LoadFontFace(c.fontPath, s(points)); err == nil {
			return f
		} else if c.logger != nil {
			c.logger.Warn("failed to load certificate font, using builtin face",
				"path", c.fontPath, "error", err)
		}
	}
	return basicfont.Face7x13
}

func (c *Composer) render(record *studentmodels.Student, settings *settingsmodels.SiteSettings, lang i18n.Lang, a *assets, qr *qrcode.QRCode) image.Image {
	width := int(s(baseWidth))
	height := int(s(baseHeight))

	canvas := imaging.New(width, height, colorWhite)
	if a.logo != nil {
		// Faint watermark behind everything, contained to the middle of
		// the page.
		wm := imaging.Fit(a.logo, int(s(560)), int(s(560)), imaging.Lanczos)
		pt := image.Pt((width-wm.Bounds().Dx())/2, (height-wm.Bounds().Dy())/2)
		canvas = imaging.Overlay(canvas, wm, pt, 0.05)
	}

	dc := gg.NewContextForImage(canvas)
	midX := s(baseWidth) / 2

	// Outer border.
	dc.SetColor(colorBlue800)
	dc.SetLineWidth(s(4))
	dc.DrawRectangle(s(2), s(2), s(baseWidth-4), s(baseHeight-4))
	dc.Stroke()

	siteName := settings.NameBN
	address := settings.AddressBN
	if lang == i18n.LangEnglish {
		siteName = settings.NameEN
		address = settings.AddressEN
	}

	// Header: logo beside the institution name and address.
	if a.logo != nil {
		logo := imaging.Fit(a.logo, int(s(200)), int(s(80)), imaging.Lanczos)
		dc.DrawImageAnchored(logo, int(midX-s(280)), int(s(90)), 0.5, 0.5)
	}
	dc.SetColor(colorBlue900)
	dc.SetFontFace(c.face(34))
	dc.DrawStringAnchored(siteName, midX+s(40), s(75), 0.5, 0.5)
	dc.SetColor(colorGray600)
	dc.SetFontFace(c.face(17))
	dc.DrawStringAnchored(address, midX+s(40), s(112), 0.5, 0.5)

	// Title with underline.
	title := i18n.T(lang, "certificate_title")
	dc.SetColor(colorGray800)
	dc.SetFontFace(c.face(28))
	dc.DrawStringAnchored(title, midX, s(185), 0.5, 0.5)
	tw, _ := dc.MeasureString(title)
	dc.SetColor(colorGray300)
	dc.SetLineWidth(s(2))
	dc.DrawLine(midX-tw/2-s(8), s(207), midX+tw/2+s(8), s(207))
	dc.Stroke()

	dc.SetColor(colorGray800)
	dc.SetFontFace(c.face(18))
	dc.DrawStringAnchored(i18n.T(lang, "this_is_to_certify"), midX, s(245), 0.5, 0.5)

	c.renderFields(dc, record, lang)

	if a.photo != nil {
		photo := imaging.Fill(a.photo, int(s(112)), int(s(144)), imaging.Center, imaging.Lanczos)
		x := int(midX + s(290))
		y := int(s(300))
		dc.DrawImage(photo, x, y)
		dc.SetColor(colorGray300)
		dc.SetLineWidth(s(2))
		dc.DrawRectangle(float64(x)-s(3), float64(y)-s(3), s(118), s(150))
		dc.Stroke()
	}

	dc.SetColor(colorGray800)
	dc.SetFontFace(c.face(18))
	dc.DrawStringAnchored(i18n.T(lang, "wishing_success"), midX, s(545), 0.5, 0.5)

	c.renderFooter(dc, lang, a, qr, siteName)

	return dc.Image()
}

func (c *Composer) renderFields(dc *gg.Context, record *studentmodels.Student, lang i18n.Lang) {
	type row struct {
		label string
		value string
	}
	rows := []row{
		{i18n.T(lang, "student_name"), record.Name},
		{i18n.T(lang, "father_name"), record.FatherName},
		{i18n.T(lang, "course_name"), record.CourseName(lang)},
		{i18n.T(lang, "course_duration"), record.CourseDuration(lang)},
		{i18n.T(lang, "duration"), record.StartDate + " - " + record.EndDate},
		{i18n.T(lang, "certificate_id"), record.ID},
	}

	labelX := s(baseWidth)/2 - s(330)
	valueX := labelX + s(180)
	y := s(300)

	dc.SetColor(colorGray800)
	for _, r := range rows {
		dc.SetFontFace(c.face(18))
		dc.DrawStringAnchored(r.label, labelX, y, 0, 0.5)
		dc.DrawStringAnchored(": "+r.value, valueX, y, 0, 0.5)
		y += s(36)
	}
}

func (c *Composer) renderFooter(dc *gg.Context, lang i18n.Lang, a *assets, qr *qrcode.QRCode, siteName string) {
	midX := s(baseWidth) / 2

	// Issue date, bottom left.
	issued := i18n.T(lang, "issue_date") + ": " + i18n.FormatLongDate(lang, c.now())
	dc.SetColor(colorGray800)
	dc.SetFontFace(c.face(14))
	dc.DrawStringAnchored(issued, s(120), s(700), 0, 0.5)

	// Verification QR, bottom center.
	qrImg := qr.Image(int(s(80)))
	dc.DrawImageAnchored(qrImg, int(midX), int(s(655)), 0.5, 0.5)
	dc.SetFontFace(c.face(11))
	dc.DrawStringAnchored(i18n.T(lang, "scan_qr"), midX, s(705), 0.5, 0.5)

	// Authority block, bottom right.
	sigX := s(baseWidth) - s(190)
	if a.signature != nil {
		sig := imaging.Fit(a.signature, int(s(160)), int(s(48)), imaging.Lanczos)
		dc.DrawImageAnchored(sig, int(sigX), int(s(640)), 0.5, 0.5)
	}
	dc.SetColor(colorGray700)
	dc.SetLineWidth(s(2))
	dc.DrawLine(sigX-s(80), s(668), sigX+s(80), s(668))
	dc.Stroke()
	dc.SetColor(colorGray800)
	dc.SetFontFace(c.face(15))
	dc.DrawStringAnchored(i18n.T(lang, "director"), sigX, s(685), 0.5, 0.5)
	dc.SetFontFace(c.face(13))
	dc.DrawStringAnchored(siteName, sigX, s(707), 0.5, 0.5)

	dc.SetColor(colorGray400)
	dc.SetFontFace(c.face(11))
	dc.DrawStringAnchored(i18n.T(lang, "digitally_verified"), s(baseWidth)-s(20), s(780), 1, 0.5)
}
