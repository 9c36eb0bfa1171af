package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bloggyhq/bloggy/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields are parsed from strings like "1h" or "30m". After
// unmarshalling, non-empty fields are copied into the runtime Config.
type JsonConfig struct {
	Addr                  string `json:"addr"`
	DatabaseDSN           string `json:"database_dsn"`
	TokenSecret           string `json:"token_secret"`
	EmailTokenSecret      string `json:"email_token_secret"`
	TokenValidityDuration string `json:"token_validity_duration"`
	BcryptCost            int    `json:"bcrypt_cost"`
	PublicBaseURL         string `json:"public_base_url"`
	MaxUploadBytes        int64  `json:"max_upload_bytes"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`

	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"smtp_password"`
	MailFrom     string `json:"mail_from"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c/-config flags; when no
// path is given, nothing is loaded. A missing or invalid file panics, since
// an explicitly requested config file must be usable.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	applyJson(config, c)
}

func applyJson(config *Config, c *JsonConfig) {
	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.TokenSecret != "" {
		config.TokenSecret = c.TokenSecret
	}
	if c.EmailTokenSecret != "" {
		config.EmailTokenSecret = c.EmailTokenSecret
	}
	if c.TokenValidityDuration != "" {
		d, err := time.ParseDuration(c.TokenValidityDuration)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.PublicBaseURL != "" {
		config.PublicBaseURL = c.PublicBaseURL
	}
	if c.MaxUploadBytes != 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.SMTPHost != "" {
		config.SMTPHost = c.SMTPHost
	}
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SMTPUser != "" {
		config.SMTPUser = c.SMTPUser
	}
	if c.SMTPPassword != "" {
		config.SMTPPassword = c.SMTPPassword
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
}
