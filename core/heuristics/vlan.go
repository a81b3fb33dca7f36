package heuristics

import (
	"fmt"

	"inventory-sync/core/inventory"
)

// UnknownSite is how a siteless VLAN is rendered.
const UnknownSite = "Unknown"

// ResolveVLAN finds the key of the VLAN a port refers to by id and name.
//
// The lookup tries (vid, name, site), then the siteless (vid, name), then, only when
// the site is unknown, the first (vid, name) VLAN in source order. When that last rule
// has several candidates the first key is returned together with an ErrAmbiguous error.
func ResolveVLAN(s *inventory.Snapshot, vid int, name, site string) (string, error) {
	if vid == 0 {
		return "", fmt.Errorf("%w: vlan 0 %q is never synced", ErrUnresolved, name)
	}
	if site != "" {
		if key := inventory.VLANKey(site, vid, name); s.Has(inventory.TypeVLAN, key) {
			return key, nil
		}
	}
	if key := inventory.VLANKey("", vid, name); s.Has(inventory.TypeVLAN, key) {
		return key, nil
	}
	if site != "" {
		return "", fmt.Errorf("%w: no vlan %d %q at %s", ErrUnresolved, vid, name, site)
	}

	var candidates []string
	for _, e := range s.Inserted(inventory.TypeVLAN) {
		v := e.(inventory.VLAN)
		if v.VID == vid && v.Name == name {
			key, _ := v.Key()
			candidates = append(candidates, key)
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: no vlan %d %q", ErrUnresolved, vid, name)
	case 1:
		return candidates[0], nil
	default:
		return candidates[0], fmt.Errorf("%w: vlan %d %q exists at %d sites, using %s",
			ErrAmbiguous, vid, name, len(candidates), SiteLabel(inventory.SplitKey(candidates[0])[0]))
	}
}

// SiteLabel renders an empty site as UnknownSite.
func SiteLabel(site string) string {
	if site == "" {
		return UnknownSite
	}
	return site
}
