package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	VerificationLookups  prometheus.Counter
	VerificationFound    prometheus.Counter
	VerificationNotFound prometheus.Counter
	CertificatesComposed prometheus.Counter
	CertificatesExported prometheus.Counter
	OriginalDownloads    prometheus.Counter
	CertificateUploads   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VerificationLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_verification_lookups_total",
			Help: "Total certificate verification lookups received",
		}),
		VerificationFound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_verification_found_total",
			Help: "Lookups that resolved to a student record",
		}),
		VerificationNotFound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_verification_not_found_total",
			Help: "Lookups that resolved to no record",
		}),
		CertificatesComposed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_certificates_composed_total",
			Help: "Certificates composed from record data",
		}),
		CertificatesExported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_certificates_exported_total",
			Help: "Composed certificates exported as PDF",
		}),
		OriginalDownloads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_original_certificate_downloads_total",
			Help: "Pre-uploaded certificate documents served",
		}),
		CertificateUploads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sanad_certificate_uploads_total",
			Help: "Certificate PDFs uploaded by admins",
		}),
	}
}
