package models

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"sanad/internal/i18n"
	dErrors "sanad/pkg/domain-errors"
)

// Student is the certificate record for one trainee.
//
// Invariants:
//   - ID is non-empty, unique within the store (case-insensitively) and
//     immutable after creation. It doubles as the certificate number embedded
//     in verification links.
//   - Name, FatherName and Phone are non-empty. Name and FatherName are
//     language-neutral: entered once, shown as-is in both languages.
//   - Course name and duration are bilingual pairs; exactly one variant is
//     rendered depending on the active language, with no fallback.
//   - StartDate and EndDate are calendar dates in YYYY-MM-DD form.
//   - ImageURL and CertificatePDFURL are optional references (URL or data
//     URI). When CertificatePDFURL is set, verification serves that document
//     and never composes one: an officially issued file outranks anything we
//     could generate.
type Student struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	FatherName        string `json:"fatherName"`
	Phone             string `json:"phone"`
	CourseNameBN      string `json:"courseName_bn"`
	CourseNameEN      string `json:"courseName_en"`
	CourseDurationBN  string `json:"courseDuration_bn"`
	CourseDurationEN  string `json:"courseDuration_en"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	ImageURL          string `json:"imageUrl,omitempty"`
	CertificatePDFURL string `json:"certificatePdfUrl,omitempty"`
}

// CourseName returns the course name variant for the language.
func (s *Student) CourseName(lang i18n.Lang) string {
	if lang == i18n.LangEnglish {
		return s.CourseNameEN
	}
	return s.CourseNameBN
}

// CourseDuration returns the course duration variant for the language.
func (s *Student) CourseDuration(lang i18n.Lang) string {
	if lang == i18n.LangEnglish {
		return s.CourseDurationEN
	}
	return s.CourseDurationBN
}

// HasUploadedCertificate reports whether an official document is attached.
func (s *Student) HasUploadedCertificate() bool {
	return s.CertificatePDFURL != ""
}

// Normalize trims whitespace from identifying fields before validation.
func (s *Student) Normalize() {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.FatherName = strings.TrimSpace(s.FatherName)
	s.Phone = strings.TrimSpace(s.Phone)
}

const dateLayout = "2006-01-02"

// Validate checks the record invariants. Malformed records are the admin
// form's responsibility to prevent; the composer assumes records it receives
// passed here.
func (s *Student) Validate() error {
	if s.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if !govalidator.StringLength(s.ID, "1", "64") {
		return dErrors.New(dErrors.CodeValidation, "id must be 64 characters or less")
	}
	if s.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if s.FatherName == "" {
		return dErrors.New(dErrors.CodeValidation, "father name is required")
	}
	if s.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	if s.CourseNameBN == "" || s.CourseNameEN == "" {
		return dErrors.New(dErrors.CodeValidation, "course name is required in both languages")
	}
	if s.CourseDurationBN == "" || s.CourseDurationEN == "" {
		return dErrors.New(dErrors.CodeValidation, "course duration is required in both languages")
	}
	if _, err := time.Parse(dateLayout, s.StartDate); err != nil {
		return dErrors.New(dErrors.CodeValidation, "start date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, s.EndDate); err != nil {
		return dErrors.New(dErrors.CodeValidation, "end date must be YYYY-MM-DD")
	}
	return nil
}
