package reconcile

import "time"

// Config holds the reconcile settings.
type Config struct {
	// DeleteOnSync removes target entities that no longer exist in Device42.
	DeleteOnSync bool `mapstructure:"delete_on_sync" default:"false"`
	// OperationTimeoutSeconds bounds every target call.
	OperationTimeoutSeconds int `mapstructure:"operation_timeout_seconds" default:"30"`
}

// OperationTimeout returns the per-operation timeout.
func (c Config) OperationTimeout() time.Duration {
	if c.OperationTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.OperationTimeoutSeconds) * time.Second
}
