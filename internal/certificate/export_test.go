package certificate

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"sanad/internal/i18n"
	settingsmodels "sanad/internal/settings/models"
	studentmodels "sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
)

func TestExportPDF(t *testing.T) {
	composer := NewComposer(NewAssetFetcher(nil), "https://training.example",
		WithClock(fixedClock()))
	artifact, err := composer.Compose(context.Background(), testRecord(t, false), settingsmodels.Default(), i18n.LangEnglish)
	require.NoError(t, err)

	data, filename, err := ExportPDF(artifact)
	require.NoError(t, err)
	require.Equal(t, "certificate-WTC-1001.pdf", filename)
	require.Greater(t, len(data), 1024)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestFilenames(t *testing.T) {
	require.Equal(t, "certificate-WTC-42.pdf", ComposedFilename("WTC-42"))
	require.Equal(t, "original-certificate-WTC-42.pdf", OriginalFilename("WTC-42"))
}

type stubResolver struct {
	record *studentmodels.Student
	err    error
}

func (r *stubResolver) Get(context.Context, string) (*studentmodels.Student, error) {
	return r.record, r.err
}

type stubSettings struct{}

func (stubSettings) Get(context.Context) (*settingsmodels.SiteSettings, error) {
	return settingsmodels.Default(), nil
}

func TestServiceExportComposed(t *testing.T) {
	composer := NewComposer(NewAssetFetcher(nil), "https://training.example",
		WithClock(fixedClock()))
	svc := NewService(&stubResolver{record: testRecord(t, false)}, stubSettings{}, composer, NewAssetFetcher(nil))

	data, filename, err := svc.ExportComposed(context.Background(), "WTC-1001", i18n.LangBengali)
	require.NoError(t, err)
	require.Equal(t, "certificate-WTC-1001.pdf", filename)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestServiceExportOriginal(t *testing.T) {
	composer := NewComposer(NewAssetFetcher(nil), "https://training.example")

	t.Run("streams the uploaded document unchanged", func(t *testing.T) {
		pdf := []byte("%PDF-1.4\nuploaded original")
		record := testRecord(t, false)
		record.CertificatePDFURL = "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)

		svc := NewService(&stubResolver{record: record}, stubSettings{}, composer, NewAssetFetcher(nil))
		data, filename, err := svc.ExportOriginal(context.Background(), record.ID)
		require.NoError(t, err)
		require.Equal(t, "original-certificate-WTC-1001.pdf", filename)
		require.Equal(t, pdf, data)
	})

	t.Run("reports not found without an upload", func(t *testing.T) {
		svc := NewService(&stubResolver{record: testRecord(t, false)}, stubSettings{}, composer, NewAssetFetcher(nil))
		_, _, err := svc.ExportOriginal(context.Background(), "WTC-1001")
		require.Error(t, err)
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
