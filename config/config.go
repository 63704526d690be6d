package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // MAIL_TIMEZONE must resolve on slim serverless images

	"riverpatch-inquiry-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// DefaultAllowedOrigins are the browser origins permitted to call the API
var DefaultAllowedOrigins = []string{
	"https://riverpatchnext.vercel.app",
	"https://www.riverpatch.com",
	"http://localhost:3000",
	"https://localhost:3000", // local HTTPS dev server
}

// Config is built once at startup and passed to every component. Treat it as read-only.
type Config struct {
	Port        string `validate:"required,numeric"`
	Environment string `validate:"oneof=development production test"`
	// ExposeErrorDetails includes the underlying send error in 500 responses
	ExposeErrorDetails bool
	// Serverless is set when the platform invokes the handler itself (e.g. VERCEL=1)
	Serverless bool

	AllowedOrigins []string `validate:"min=1,dive,url"`
	MaxBodyBytes   int64    `validate:"gt=0"`
	SwaggerEnabled bool

	// Mail transport
	MailProvider   string        `validate:"oneof=smtp resend"`
	EmailUser      string        `validate:"required"`
	EmailPass      string        `validate:"required_if=MailProvider smtp"`
	SMTPHost       string        `validate:"required_if=MailProvider smtp"`
	SMTPPort       string        `validate:"required_if=MailProvider smtp,omitempty,numeric"`
	ResendAPIKey   string        `validate:"required_if=MailProvider resend"`
	MailFrom       string        `validate:"required,email"`
	MailFromName   string        `validate:"required"`
	ContactEmailTo string        `validate:"required,email"`
	SendTimeout    time.Duration `validate:"gt=0"`

	// Rendering
	MailTimezone      string `validate:"required,timezone"`
	BrandName         string `validate:"required"`
	BrandTagline      string
	BrandContactEmail string

	// Logging
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig reads .env (if present) and the process environment.
// It fails when the mail provider credentials are missing.
func LoadConfig() (*Config, error) {
	// .env is only used locally; missing file is fine
	_ = godotenv.Load()

	return Load(os.LookupEnv)
}

// Load builds a Config from the given lookup function
func Load(lookup func(string) (string, bool)) (*Config, error) {
	env := envReader{lookup: lookup}

	emailUser := strings.TrimSpace(env.get("EMAIL_USER", ""))

	cfg := &Config{
		Port:               env.get("PORT", "5000"),
		Environment:        strings.ToLower(env.get("APP_ENV", "development")),
		ExposeErrorDetails: env.getBool("EXPOSE_ERROR_DETAILS", false),
		Serverless:         env.get("VERCEL", "") == "1" || env.getBool("SERVERLESS", false),

		AllowedOrigins: env.getList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		MaxBodyBytes:   int64(env.getInt("MAX_BODY_BYTES", 100<<10)), // express.json default
		SwaggerEnabled: env.getBool("SWAGGER_ENABLED", false),

		MailProvider:   strings.ToLower(env.get("MAIL_PROVIDER", ProviderSMTP)),
		EmailUser:      emailUser,
		EmailPass:      env.get("EMAIL_PASS", ""),
		SMTPHost:       env.get("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       env.get("SMTP_PORT", "465"),
		ResendAPIKey:   env.get("RESEND_API_KEY", ""),
		MailFrom:       env.get("MAIL_FROM", emailUser),
		MailFromName:   env.get("MAIL_FROM_NAME", "RiverPatch Studio"),
		ContactEmailTo: env.get("CONTACT_EMAIL_TO", emailUser),
		SendTimeout:    env.getDuration("SEND_TIMEOUT", 9*time.Second), // stays under the serverless execution limit

		MailTimezone:      env.get("MAIL_TIMEZONE", "America/New_York"),
		BrandName:         env.get("BRAND_NAME", "RiverPatch Studio"),
		BrandTagline:      env.get("BRAND_TAGLINE", "Elevate your business with Smart Web Solutions"),
		BrandContactEmail: env.get("BRAND_CONTACT_EMAIL", "team@riverpatch.com"),

		LogLevel:  strings.ToLower(env.get("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(env.get("LOG_FORMAT", "json")),
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return envName(fld.Name)
	})
	if err := v.Struct(cfg); err != nil {
		return nil, &Error{Err: err}
	}

	return cfg, nil
}

// Error reports an unusable configuration. The process must not start with it.
type Error struct {
	Err error
}

// Error lists every offending variable, e.g. "SMTP_HOST: is required when MailProvider smtp"
func (e *Error) Error() string {
	return "invalid configuration: " + strings.Join(validation.FormatValidationErrors(e.Err), "; ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// envName maps struct fields to the variable an operator has to set. Validation
// errors report these names.
func envName(field string) string {
	names := map[string]string{
		"Port":           "PORT",
		"Environment":    "APP_ENV",
		"AllowedOrigins": "CORS_ALLOWED_ORIGINS",
		"MaxBodyBytes":   "MAX_BODY_BYTES",
		"MailProvider":   "MAIL_PROVIDER",
		"EmailUser":      "EMAIL_USER",
		"EmailPass":      "EMAIL_PASS",
		"SMTPHost":       "SMTP_HOST",
		"SMTPPort":       "SMTP_PORT",
		"ResendAPIKey":   "RESEND_API_KEY",
		"MailFrom":       "MAIL_FROM",
		"MailFromName":   "MAIL_FROM_NAME",
		"ContactEmailTo": "CONTACT_EMAIL_TO",
		"SendTimeout":    "SEND_TIMEOUT",
		"MailTimezone":   "MAIL_TIMEZONE",
		"BrandName":      "BRAND_NAME",
		"LogLevel":       "LOG_LEVEL",
		"LogFormat":      "LOG_FORMAT",
	}
	if name, ok := names[field]; ok {
		return name
	}
	return field
}

type envReader struct {
	lookup func(string) (string, bool)
}

func (r envReader) get(key, fallback string) string {
	if value, exists := r.lookup(key); exists {
		return value
	}
	return fallback
}

// getInt returns an integer environment variable or fallback if not set/invalid
func (r envReader) getInt(key string, fallback int) int {
	if value, exists := r.lookup(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getBool returns a boolean environment variable or fallback if not set/invalid
func (r envReader) getBool(key string, fallback bool) bool {
	if value, exists := r.lookup(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getDuration accepts Go durations ("9s") or plain milliseconds ("9000")
func (r envReader) getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := r.lookup(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func (r envReader) getList(key string, fallback []string) []string {
	value, exists := r.lookup(key)
	if !exists || strings.TrimSpace(value) == "" {
		return append([]string(nil), fallback...)
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimRight(strings.TrimSpace(item), "/")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
