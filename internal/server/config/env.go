package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration values from environment variables.
// The variable names follow the deployment convention of the hosted API
// (TOKEN_SECRET, EMAIL_TOKEN_SECRET, ...). Unset variables leave the
// current value untouched; unparsable numeric values are ignored.
func parseEnv(config *Config) {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("ADDRESS", &config.Addr)
	if v, ok := os.LookupEnv("PORT"); ok {
		config.Addr = ":" + v
	}
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("TOKEN_SECRET", &config.TokenSecret)
	setString("EMAIL_TOKEN_SECRET", &config.EmailTokenSecret)
	setString("PUBLIC_BASE_URL", &config.PublicBaseURL)

	if v, ok := os.LookupEnv("TOKEN_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v, ok := os.LookupEnv("MAX_UPLOAD_BYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}

	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	setString("SMTP_HOST", &config.SMTPHost)
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = n
		}
	}
	setString("SMTP_USER", &config.SMTPUser)
	setString("SMTP_PASSWORD", &config.SMTPPassword)
	setString("MAIL_FROM", &config.MailFrom)
}
