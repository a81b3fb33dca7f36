package heuristics

import (
	"fmt"
	"regexp"
	"strings"
)

type hostnameRule struct {
	pattern *regexp.Regexp
	site    string
}

// SiteResolver assigns devices to buildings.
type SiteResolver struct {
	rules              []hostnameRule
	customerIsFacility bool
	facilityPrepend    string
	facilities         map[string]string
}

// NewSiteResolver compiles the hostname mapping. Each entry has the form "regex=site",
// split on the last '='. Patterns only match at the start of a device name.
func NewSiteResolver(cfg Config) (*SiteResolver, error) {
	r := &SiteResolver{
		customerIsFacility: cfg.CustomerIsFacility,
		facilityPrepend:    cfg.FacilityPrepend,
		facilities:         make(map[string]string),
	}
	for _, entry := range cfg.HostnameMapping {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		idx := strings.LastIndex(entry, "=")
		if idx <= 0 || idx == len(entry)-1 {
			return nil, fmt.Errorf("invalid hostname mapping %q: expected regex=site", entry)
		}
		re, err := regexp.Compile("^(?:" + entry[:idx] + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid hostname mapping %q: %w", entry, err)
		}
		r.rules = append(r.rules, hostnameRule{pattern: re, site: entry[idx+1:]})
	}
	return r, nil
}

// AddBuilding registers the facility code carried by a building's tags.
// It returns the facility code, or "" when the building has none.
func (r *SiteResolver) AddBuilding(name string, tags []string) string {
	facility := FacilityFromTags(tags, r.facilityPrepend)
	if facility != "" {
		r.facilities[facility] = name
	}
	return facility
}

// Facility returns the building registered for a facility code.
func (r *SiteResolver) Facility(code string) (string, bool) {
	name, ok := r.facilities[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}

// FromHostname returns the site of the first hostname rule matching name.
func (r *SiteResolver) FromHostname(name string) (string, bool) {
	for _, rule := range r.rules {
		if rule.pattern.MatchString(name) {
			return rule.site, true
		}
	}
	return "", false
}

// Resolve picks the site of a device: hostname mapping first, then the customer's
// facility when enabled, then the device's own building.
func (r *SiteResolver) Resolve(name, customer, building string) (string, error) {
	if site, ok := r.FromHostname(name); ok {
		return site, nil
	}
	if r.customerIsFacility && customer != "" {
		if site, ok := r.Facility(customer); ok {
			return site, nil
		}
	}
	if building != "" {
		return building, nil
	}
	return "", fmt.Errorf("%w: no site for device %q", ErrUnresolved, name)
}

// FacilityFromTags returns the upper-cased suffix of the first tag starting with prepend.
func FacilityFromTags(tags []string, prepend string) string {
	if prepend == "" {
		return ""
	}
	for _, tag := range tags {
		if strings.HasPrefix(tag, prepend) && len(tag) > len(prepend) {
			return strings.ToUpper(strings.TrimPrefix(tag, prepend))
		}
	}
	return ""
}

// RoleFromTags returns the first tag starting with prepend with the prefix removed,
// or fallback when none does.
func RoleFromTags(tags []string, prepend, fallback string) string {
	if prepend != "" {
		for _, tag := range tags {
			if strings.HasPrefix(tag, prepend) && len(tag) > len(prepend) {
				return strings.TrimPrefix(tag, prepend)
			}
		}
	}
	return fallback
}
