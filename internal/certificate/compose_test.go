package certificate

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sanad/internal/i18n"
	settingsmodels "sanad/internal/settings/models"
	studentmodels "sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func testRecord(t *testing.T, withPhoto bool) *studentmodels.Student {
	record := &studentmodels.Student{
		ID:               "WTC-1001",
		Name:             "Rahim Uddin",
		FatherName:       "Karim Uddin",
		Phone:            "01711000000",
		CourseNameBN:     "কম্পিউটার অফিস অ্যাপ্লিকেশন",
		CourseNameEN:     "Computer Office Application",
		CourseDurationBN: "৬ মাস",
		CourseDurationEN: "6 Months",
		StartDate:        "2024-01-01",
		EndDate:          "2024-06-30",
	}
	if withPhoto {
		record.ImageURL = pngDataURI(t, 40, 50)
	}
	return record
}

func testSettings(t *testing.T) *settingsmodels.SiteSettings {
	s := settingsmodels.Default()
	s.LogoURL = pngDataURI(t, 64, 64)
	s.SignatureURL = pngDataURI(t, 120, 40)
	s.AddressBN = "মিরপুর, ঢাকা"
	s.AddressEN = "Mirpur, Dhaka"
	return s
}

func fixedClock() func() time.Time {
	at := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestComposeRendersAtExportResolution(t *testing.T) {
	composer := NewComposer(NewAssetFetcher(nil), "https://training.example",
		WithClock(fixedClock()))

	artifact, err := composer.Compose(context.Background(), testRecord(t, true), testSettings(t), i18n.LangBengali)
	require.NoError(t, err)
	require.Equal(t, "WTC-1001", artifact.RecordID)
	require.Equal(t, i18n.LangBengali, artifact.Lang)

	bounds := artifact.Image.Bounds()
	require.Equal(t, int(baseWidth*renderScale), bounds.Dx())
	require.Equal(t, int(baseHeight*renderScale), bounds.Dy())
}

func TestComposeWorksWithoutOptionalAssets(t *testing.T) {
	composer := NewComposer(NewAssetFetcher(nil), "https://training.example",
		WithClock(fixedClock()))

	settings := settingsmodels.Default()
	artifact, err := composer.Compose(context.Background(), testRecord(t, false), settings, i18n.LangEnglish)
	require.NoError(t, err)
	require.NotNil(t, artifact.Image)
}

func TestComposeFailsWhenAssetFetchFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	composer := NewComposer(NewAssetFetcher(nil), "https://training.example",
		WithClock(fixedClock()))

	settings := testSettings(t)
	settings.LogoURL = srv.URL + "/logo.png"

	_, err := composer.Compose(context.Background(), testRecord(t, false), settings, i18n.LangBengali)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestVerificationURL(t *testing.T) {
	composer := NewComposer(NewAssetFetcher(nil), "https://training.example")
	require.Equal(t,
		"https://training.example/certificate-verification?id=WTC-1001",
		composer.VerificationURL("WTC-1001"))
}
