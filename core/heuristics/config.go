package heuristics

// Defaults are the values substituted when Device42 carries none.
type Defaults struct {
	// SiteStatus is the status given to every building.
	SiteStatus string `mapstructure:"site_status" default:"Active"`
	// RackStatus is the status given to every rack.
	RackStatus string `mapstructure:"rack_status" default:"Active"`
	// DeviceRole is used when no tag carries the role prefix.
	DeviceRole string `mapstructure:"device_role" default:"Unknown"`
}

// Config holds the disambiguation settings of a sync run.
type Config struct {
	Defaults Defaults `mapstructure:"defaults"`
	// UseDNS enables primary IP resolution through DNS A/AAAA records.
	UseDNS bool `mapstructure:"use_dns" default:"false"`
	// CustomerIsFacility maps a device's customer to the building carrying that facility code.
	CustomerIsFacility bool `mapstructure:"customer_is_facility" default:"false"`
	// FacilityPrepend marks building tags that carry a facility code, e.g. "sitecode-".
	FacilityPrepend string `mapstructure:"facility_prepend" default:"sitecode-"`
	// RolePrepend marks device tags that carry a role, e.g. "nautobot-".
	RolePrepend string `mapstructure:"role_prepend" default:"nautobot-"`
	// HostnameMapping is a list of "regex=site" entries tried in order.
	HostnameMapping []string `mapstructure:"hostname_mapping" default:""`
	// IgnoreTag excludes tagged entities from the sync.
	IgnoreTag string `mapstructure:"ignore_tag" default:""`
	// VerboseDebug logs every mapped record.
	VerboseDebug bool `mapstructure:"verbose_debug" default:"false"`
	// Workers bounds concurrent Device42 fetches.
	Workers int `mapstructure:"workers" default:"4"`
}
