package certificate

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/go-pdf/fpdf"
)

// jpegQuality balances sharp text against download size for the embedded
// page image.
const jpegQuality = 95

// ExportPDF encodes a composed artifact as a single-page landscape A4 PDF.
// The rendered image is JPEG-compressed and stretched to cover the full
// page; the PDF carries no text layer, matching what is printed.
func ExportPDF(artifact *Artifact) ([]byte, string, error) {
	var img bytes.Buffer
	if err := jpeg.Encode(&img, artifact.Image, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode certificate image: %w", err)
	}

	pdf := fpdf.New(fpdf.OrientationLandscape, fpdf.UnitMillimeter, fpdf.PageSizeA4, "")
	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("certificate", opts, &img)
	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions("certificate", 0, 0, pageW, pageH, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, "", fmt.Errorf("write certificate pdf: %w", err)
	}
	return out.Bytes(), ComposedFilename(artifact.RecordID), nil
}

// ComposedFilename names a generated certificate download.
func ComposedFilename(recordID string) string {
	return "certificate-" + recordID + ".pdf"
}

// OriginalFilename names an uploaded-certificate download, distinguishing
// it from generated ones.
func OriginalFilename(recordID string) string {
	return "original-certificate-" + recordID + ".pdf"
}
