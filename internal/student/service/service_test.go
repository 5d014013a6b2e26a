package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"sanad/internal/platform/config"
	"sanad/internal/student/models"
	"sanad/internal/student/store"
	dErrors "sanad/pkg/domain-errors"
)

type fakeBlobStore struct {
	puts int
}

func (f *fakeBlobStore) PutPDF(_ context.Context, certificateID string, _ []byte) (string, error) {
	f.puts++
	return "/uploads/certificates/" + strings.ToLower(certificateID) + ".pdf", nil
}

type StudentServiceSuite struct {
	suite.Suite
	service *Service
	blobs   *fakeBlobStore
	ctx     context.Context
}

func (s *StudentServiceSuite) SetupTest() {
	s.blobs = &fakeBlobStore{}
	s.service = New(store.NewInMemoryStore(), s.blobs)
	s.ctx = context.Background()
}

func TestStudentServiceSuite(t *testing.T) {
	suite.Run(t, new(StudentServiceSuite))
}

func (s *StudentServiceSuite) newStudent(id, phone string) *models.Student {
	return &models.Student{
		ID:               id,
		Name:             "Fatema Begum",
		FatherName:       "Abdul Malek",
		Phone:            phone,
		CourseNameBN:     "দর্জি বিজ্ঞান",
		CourseNameEN:     "Tailoring",
		CourseDurationBN: "৩ মাস",
		CourseDurationEN: "3 Months",
		StartDate:        "2024-03-01",
		EndDate:          "2024-05-31",
	}
}

func (s *StudentServiceSuite) mustCreate(id, phone string) *models.Student {
	created, err := s.service.Create(s.ctx, s.newStudent(id, phone))
	s.Require().NoError(err)
	return created
}

func (s *StudentServiceSuite) TestFind() {
	s.mustCreate("WTC-1001", "01711000001")
	s.mustCreate("WTC-1002", "01711000002")

	s.Run("finds by certificate id ignoring case and whitespace", func() {
		found, err := s.service.Find(s.ctx, "  wtc-1001  ")
		s.Require().NoError(err)
		s.Equal("WTC-1001", found.ID)
	})

	s.Run("finds by phone number", func() {
		found, err := s.service.Find(s.ctx, "01711000002")
		s.Require().NoError(err)
		s.Equal("WTC-1002", found.ID)
	})

	s.Run("id and phone share one query input", func() {
		// A phone-shaped query never matches an id and vice versa; both
		// comparisons run against the same normalized value.
		found, err := s.service.Find(s.ctx, "01711000001")
		s.Require().NoError(err)
		s.Equal("WTC-1001", found.ID)
	})

	s.Run("returns not found for unknown query", func() {
		_, err := s.service.Find(s.ctx, "WTC-9999")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("returns not found for empty query", func() {
		_, err := s.service.Find(s.ctx, "   ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *StudentServiceSuite) TestFindDuplicatePhonePrefersNewest() {
	s.mustCreate("WTC-2001", "01711000009")
	s.mustCreate("WTC-2002", "01711000009")

	// Store order is newest first, and the first match wins.
	found, err := s.service.Find(s.ctx, "01711000009")
	s.Require().NoError(err)
	s.Equal("WTC-2002", found.ID)
}

func (s *StudentServiceSuite) TestCreate() {
	s.Run("rejects duplicate certificate id case-insensitively", func() {
		s.mustCreate("WTC-3001", "01711000001")

		_, err := s.service.Create(s.ctx, s.newStudent("wtc-3001", "01711000002"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects incomplete records", func() {
		student := s.newStudent("WTC-3002", "01711000003")
		student.FatherName = ""
		_, err := s.service.Create(s.ctx, student)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects malformed dates", func() {
		student := s.newStudent("WTC-3003", "01711000004")
		student.StartDate = "01/03/2024"
		_, err := s.service.Create(s.ctx, student)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *StudentServiceSuite) TestUpdate() {
	s.mustCreate("WTC-4001", "01711000001")

	s.Run("updates fields", func() {
		updated := s.newStudent("WTC-4001", "01711999999")
		got, err := s.service.Update(s.ctx, "WTC-4001", updated)
		s.Require().NoError(err)
		s.Equal("01711999999", got.Phone)
	})

	s.Run("rejects changing the certificate id", func() {
		renamed := s.newStudent("WTC-4002", "01711000001")
		_, err := s.service.Update(s.ctx, "WTC-4001", renamed)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("keeps the stored id casing", func() {
		payload := s.newStudent("wtc-4001", "01711000001")
		got, err := s.service.Update(s.ctx, "wtc-4001", payload)
		s.Require().NoError(err)
		s.Equal("WTC-4001", got.ID)
	})

	s.Run("returns not found for unknown id", func() {
		_, err := s.service.Update(s.ctx, "WTC-9999", s.newStudent("WTC-9999", "x"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func pdfBytes(size int) []byte {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{'a'}, size)...)
	return data[:size]
}

func (s *StudentServiceSuite) TestAttachCertificate() {
	s.mustCreate("WTC-5001", "01711000001")

	s.Run("stores the document and records the url", func() {
		got, err := s.service.AttachCertificate(s.ctx, "WTC-5001", pdfBytes(512))
		s.Require().NoError(err)
		s.Equal("/uploads/certificates/wtc-5001.pdf", got.CertificatePDFURL)
		s.True(got.HasUploadedCertificate())
		s.Equal(1, s.blobs.puts)
	})

	s.Run("rejects non-PDF content", func() {
		_, err := s.service.AttachCertificate(s.ctx, "WTC-5001", []byte("<html>not a pdf</html>"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects oversized documents", func() {
		_, err := s.service.AttachCertificate(s.ctx, "WTC-5001", pdfBytes(config.MaxCertificatePDFBytes+1))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *StudentServiceSuite) TestAttachCertificateByIdentity() {
	s.mustCreate("WTC-6001", "01711000001")

	s.Run("requires both id and phone to match", func() {
		_, err := s.service.AttachCertificateByIdentity(s.ctx, "WTC-6001", "01711999999", pdfBytes(512))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown id reports the same not found", func() {
		_, err := s.service.AttachCertificateByIdentity(s.ctx, "WTC-9999", "01711000001", pdfBytes(512))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("attaches when both match", func() {
		got, err := s.service.AttachCertificateByIdentity(s.ctx, "wtc-6001", "01711000001", pdfBytes(512))
		s.Require().NoError(err)
		s.True(got.HasUploadedCertificate())
	})
}
