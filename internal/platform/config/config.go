package config

import (
	"os"
	"strconv"
	"time"
)

// MaxCertificatePDFBytes caps uploaded certificate documents. The admin forms
// enforce the same limit client-side; the upload handler is the authority.
const MaxCertificatePDFBytes = 1 << 20 // 1 MiB

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr string
	Env  string

	// BaseURL is the public origin of the site. It is embedded in QR
	// verification links, so it must be the address visitors reach, not the
	// bind address.
	BaseURL string

	// StorageBackend selects the record store: "memory", "file" or "postgres".
	StorageBackend string
	DataDir        string
	PostgresDSN    string

	RedisURL string

	JWTSigningKey string
	JWTIssuer     string
	AccessTTL     time.Duration

	AdminEmail    string
	AdminPassword string

	// FontPath optionally points at a TTF used for certificate rendering.
	// Empty means the built-in face, which cannot shape Bengali script.
	FontPath string

	VerifyRateLimitPerMin int
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:                  getenv("SANAD_ADDR", ":8080"),
		Env:                   getenv("SANAD_ENV", "development"),
		BaseURL:               getenv("SANAD_BASE_URL", "http://localhost:8080"),
		StorageBackend:        getenv("SANAD_STORAGE", "file"),
		DataDir:               getenv("SANAD_DATA_DIR", "data"),
		PostgresDSN:           os.Getenv("SANAD_POSTGRES_DSN"),
		RedisURL:              os.Getenv("SANAD_REDIS_URL"),
		JWTSigningKey:         getenv("SANAD_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:             getenv("SANAD_JWT_ISSUER", "sanad"),
		AccessTTL:             getduration("SANAD_ACCESS_TTL", 12*time.Hour),
		AdminEmail:            getenv("SANAD_ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:         getenv("SANAD_ADMIN_PASSWORD", "admin123"),
		FontPath:              os.Getenv("SANAD_FONT_PATH"),
		VerifyRateLimitPerMin: getint("SANAD_VERIFY_RATE_LIMIT", 60),
	}
}

func (s Server) IsProduction() bool { return s.Env == "production" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
