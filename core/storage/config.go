package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds Device42 exports and sync reports.
	Bucket string `mapstructure:"bucket" default:"inventory"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ExportPrefix is where Device42 exports are read from.
	ExportPrefix string `mapstructure:"export_prefix" default:"device42"`
	// ReportPrefix is where run reports are archived.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
	// ReportRetention is the number of archived reports kept; 0 keeps all.
	ReportRetention int `mapstructure:"report_retention" default:"50"`
}

// Prefixes returns the prefixes the bucket is expected to hold.
func (c Config) Prefixes() []string {
	return []string{c.ExportPrefix, c.ReportPrefix}
}
