package device42

import (
	"math"
	"strings"

	"inventory-sync/core/heuristics"
	"inventory-sync/core/inventory"
	"inventory-sync/core/utils"
)

const (
	statusConnected = "connected"
	devicePortSide  = "Device Port"
	maxAccountLen   = 30
)

var bandwidthKbps = map[string]float64{
	"kbps": 1,
	"mbps": 1000,
	"gbps": 1000 * 1000,
	"tbps": 1000 * 1000 * 1000,
}

// portEndpoint returns the interface endpoint for device and port when the port is in the
// snapshot. quiet is set when the device was deliberately left out.
func (r *run) portEndpoint(device, port string) (ep inventory.Endpoint, ok, quiet bool) {
	device = heuristics.DeviceName(device)
	port = strings.TrimSpace(port)
	if device == "" || port == "" {
		return ep, false, true
	}
	if r.skipDevices[device] {
		return ep, false, true
	}
	if !r.snap.Has(inventory.TypePort, inventory.JoinKey(device, port)) {
		return ep, false, false
	}
	return inventory.InterfaceEndpoint(device, port), true, false
}

func (r *run) loadConnections() {
	for _, rec := range r.records[KindConnections] {
		a, okA, quietA := r.portEndpoint(rec.String("src_device"), rec.String("src_port"))
		b, okB, quietB := r.portEndpoint(rec.String("dst_device"), rec.String("dst_port"))
		if !okA || !okB {
			if !quietA && !quietB {
				ident := inventory.JoinKey(rec.String("src_device"), rec.String("src_port"), rec.String("dst_device"), rec.String("dst_port"))
				r.issue(inventory.UnresolvedReference, inventory.TypeConnection, ident, "connection endpoint port not found")
			}
			continue
		}
		c := inventory.NewConnection(a, b, statusConnected)
		// Device42 lists each cable from both ends.
		if key, err := c.Key(); err == nil && r.snap.Has(inventory.TypeConnection, key) {
			continue
		}
		r.insert(c, a.String())
	}
}

func (r *run) vendorRecords() map[string]utils.Record {
	out := make(map[string]utils.Record, len(r.records[KindVendors]))
	for _, rec := range r.records[KindVendors] {
		out[strings.TrimSpace(rec.String("name"))] = rec
	}
	return out
}

func commitRate(bandwidth float64, unit string) int {
	factor, ok := bandwidthKbps[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		factor = 1
	}
	return int(math.Round(bandwidth * factor))
}

func (r *run) loadProvidersAndCircuits() {
	vendors := r.vendorRecords()
	for _, rec := range r.records[KindCircuits] {
		provider := strings.TrimSpace(rec.String("vendor"))
		circuitID := strings.TrimSpace(rec.String("circuit_id"))
		t := tags(rec)
		if r.ignored(inventory.TypeCircuit, circuitID, t) {
			continue
		}
		if provider != "" && !r.snap.Has(inventory.TypeProvider, provider) {
			v := vendors[provider]
			if v == nil {
				v = utils.Record{}
			}
			account := v.String("account_no")
			if len(account) > maxAccountLen {
				account = account[:maxAccountLen]
			}
			r.insert(inventory.Provider{
				Name:     provider,
				Notes:    heuristics.Sanitize(v.String("notes")),
				URL:      v.String("home_page"),
				Account:  account,
				Contact1: v.String("escalation_1"),
				Contact2: v.String("escalation_2"),
			}, provider)
		}

		installed := rec.String("turn_on_date")
		if installed == "" {
			installed = rec.String("provision_date")
		}
		c := inventory.Circuit{
			Provider:    provider,
			CircuitID:   circuitID,
			Type:        rec.String("type_name"),
			Status:      heuristics.CircuitStatus(rec.String("status")),
			InstallDate: installed,
			CommitRate:  commitRate(rec.Float("bandwidth"), rec.String("unit")),
			Notes:       heuristics.Sanitize(rec.String("notes")),
			Tags:        t,
		}
		if !r.insert(c, inventory.JoinKey(provider, circuitID)) {
			continue
		}

		r.terminate(c, "A", rec.String("origin_type"), rec.String("origin_device"), rec.String("origin_port"))
		r.terminate(c, "Z", rec.String("end_point_type"), rec.String("end_point_device"), rec.String("end_point_port"))
	}
}

// terminate adds the termination of one circuit side and cables it to the device port.
// Only sides ending on a device port are modelled.
func (r *run) terminate(c inventory.Circuit, side, kind, device, port string) {
	if kind != devicePortSide {
		return
	}
	ep, ok, quiet := r.portEndpoint(device, port)
	if !ok {
		if !quiet {
			r.issue(inventory.UnresolvedReference, inventory.TypeCircuitTermination,
				inventory.TerminationKey(c.Provider, c.CircuitID, side), "termination port not found")
		}
		return
	}
	e, _ := r.snap.Get(inventory.TypeDevice, ep.Device)
	term := inventory.CircuitTermination{
		Provider:  c.Provider,
		CircuitID: c.CircuitID,
		Side:      side,
		Site:      e.(inventory.Device).Site,
		PortSpeed: c.CommitRate,
	}
	if !r.insert(term, inventory.TerminationKey(c.Provider, c.CircuitID, side)) {
		return
	}
	r.insert(inventory.NewConnection(ep, inventory.CircuitEndpoint(c.Provider, c.CircuitID, side), statusConnected), ep.String())
}
