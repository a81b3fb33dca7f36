package device42

// Config holds the Device42 connection settings.
type Config struct {
	// Host is the base URL of the Device42 appliance.
	Host string `mapstructure:"host" default:"https://device42.local"`
	// Username for HTTP basic authentication.
	Username string `mapstructure:"username" default:"admin"`
	// Password for HTTP basic authentication.
	Password string `mapstructure:"password" default:""`
	// VerifySSL enables TLS certificate verification.
	VerifySSL bool `mapstructure:"verify_ssl" default:"true"`
	// PageSize is sent as _max_results on paged listings.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// Source selects where records are read from: api or export.
	Source string `mapstructure:"source" default:"api"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
