package device42

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	d42 "inventory-sync/core/device42"
	"inventory-sync/core/storage"
	"inventory-sync/core/utils"

	"github.com/minio/minio-go/v7"
	"gopkg.in/yaml.v3"
)

// Kind names one set of raw Device42 records.
type Kind string

const (
	KindBuildings          Kind = "buildings"
	KindRooms              Kind = "rooms"
	KindRacks              Kind = "racks"
	KindVendors            Kind = "vendors"
	KindHardware           Kind = "hardware"
	KindVRFGroups          Kind = "vrfgroups"
	KindVLANs              Kind = "vlans"
	KindVLANInfo           Kind = "vlan_info"
	KindVLANCustomFields   Kind = "vlan_custom_fields"
	KindSubnets            Kind = "subnets"
	KindSubnetCustomFields Kind = "subnet_custom_fields"
	KindClusters           Kind = "clusters"
	KindDevices            Kind = "devices"
	KindPorts              Kind = "ports"
	KindPortCustomFields   Kind = "port_custom_fields"
	KindIPAddresses        Kind = "ip_addresses"
	KindIPCustomFields     Kind = "ip_custom_fields"
	KindConnections        Kind = "connections"
	KindCircuits           Kind = "circuits"
)

// Kinds lists every record kind a load fetches.
var Kinds = []Kind{
	KindBuildings, KindRooms, KindRacks, KindVendors, KindHardware, KindVRFGroups,
	KindVLANs, KindVLANInfo, KindVLANCustomFields, KindSubnets, KindSubnetCustomFields, KindClusters, KindDevices,
	KindPorts, KindPortCustomFields, KindIPAddresses, KindIPCustomFields, KindConnections, KindCircuits,
}

// Custom field kinds may be absent from an export.
var optionalKinds = map[Kind]bool{
	KindVLANCustomFields:   true,
	KindSubnetCustomFields: true,
	KindPortCustomFields:   true,
	KindIPCustomFields:     true,
}

// RecordSource returns raw Device42 records of one kind.
type RecordSource interface {
	Records(ctx context.Context, kind Kind) ([]utils.Record, error)
}

type request struct {
	path string
	key  string
	doql string
}

var requests = map[Kind]request{
	KindBuildings: {path: "api/1.0/buildings/", key: "buildings"},
	KindRooms:     {path: "api/1.0/rooms/", key: "rooms"},
	KindRacks:     {path: "api/1.0/racks/", key: "racks"},
	KindVendors:   {path: "api/1.0/vendors/", key: "vendors"},
	KindHardware:  {path: "api/1.0/hardwares/", key: "models"},
	KindVRFGroups: {path: "api/1.0/vrfgroup/", key: "vrfgroup"},
	KindDevices:   {path: "api/1.0/devices/all/?is_it_switch=yes", key: "Devices"},

	KindClusters: {doql: "SELECT m.name AS cluster, string_agg(d.name, '; ') AS members, h.name AS hardware, d.network_device, d.os_name AS os, b.name AS customer, d.tags " +
		"FROM view_device_v1 m JOIN view_devices_in_cluster_v1 c ON c.parent_device_fk = m.device_pk " +
		"JOIN view_device_v1 d ON d.device_pk = c.child_device_fk JOIN view_hardware_v1 h ON h.hardware_pk = d.hardware_fk " +
		"LEFT JOIN view_customer_v1 b ON b.customer_pk = d.customer_fk WHERE m.type LIKE '%cluster%' " +
		"GROUP BY m.name, h.name, d.network_device, d.os_name, b.name, d.tags"},
	KindPorts: {doql: "SELECT n.port AS port_name, d.name AS device_name, n.description, n.up, n.up_admin, n.discovered_type, n.hwaddress, n.port_type, n.port_speed, n.mtu, n.tags, " +
		"array_agg(DISTINCT vn.vlan_fk) AS vlan_pks FROM view_netport_v1 n JOIN view_device_v1 d ON d.device_pk = n.device_fk " +
		"LEFT JOIN view_vlan_on_netport_v1 vn ON vn.netport_fk = n.netport_pk WHERE n.port IS NOT NULL " +
		"GROUP BY n.port, d.name, n.description, n.up, n.up_admin, n.discovered_type, n.hwaddress, n.port_type, n.port_speed, n.mtu, n.tags"},
	KindPortCustomFields: {doql: "SELECT cf.key, cf.value, np.port AS port_name, d.name AS device_name FROM view_netport_custom_fields_v1 cf " +
		"LEFT JOIN view_netport_v1 np ON np.netport_pk = cf.netport_fk LEFT JOIN view_device_v1 d ON d.device_pk = np.device_fk"},
	KindVLANs: {doql: "SELECT v.vlan_pk, v.number AS vid, v.description, vn.vlan_name, b.name AS building, c.name AS customer FROM view_vlan_v1 v " +
		"LEFT JOIN view_vlan_on_netport_v1 vn ON vn.vlan_fk = v.vlan_pk LEFT JOIN view_netport_v1 n ON n.netport_pk = vn.netport_fk " +
		"LEFT JOIN view_device_v2 d ON d.device_pk = n.device_fk LEFT JOIN view_building_v1 b ON b.building_pk = d.building_fk " +
		"LEFT JOIN view_customer_v1 c ON c.customer_pk = d.customer_fk WHERE vn.vlan_name IS NOT NULL AND v.number <> 0 " +
		"GROUP BY v.vlan_pk, v.number, v.description, vn.vlan_name, b.name, c.name"},
	KindVLANInfo:         {doql: "SELECT v.vlan_pk, v.name, v.number AS vid FROM view_vlan_v1 v"},
	KindVLANCustomFields: {doql: "SELECT cf.key, cf.value, cf.vlan_fk AS vlan_pk FROM view_vlan_custom_fields_v1 cf"},
	KindSubnets: {doql: "SELECT s.name, s.network, s.mask_bits, s.tags, v.name AS vrf FROM view_subnet_v1 s " +
		"JOIN view_vrfgroup_v1 v ON s.vrfgroup_fk = v.vrfgroup_pk"},
	KindSubnetCustomFields: {doql: "SELECT cf.key, cf.value, s.network, s.mask_bits FROM view_subnet_custom_fields_v1 cf " +
		"LEFT JOIN view_subnet_v1 s ON s.subnet_pk = cf.subnet_fk"},
	KindIPAddresses: {doql: "SELECT i.ip_address, i.available, i.label, i.tags, np.port AS port_name, s.mask_bits AS netmask, v.name AS vrf, d.name AS device " +
		"FROM view_ipaddress_v1 i LEFT JOIN view_subnet_v1 s ON s.subnet_pk = i.subnet_fk LEFT JOIN view_device_v1 d ON d.device_pk = i.device_fk " +
		"LEFT JOIN view_netport_v1 np ON np.netport_pk = i.netport_fk LEFT JOIN view_vrfgroup_v1 v ON v.vrfgroup_pk = s.vrfgroup_fk WHERE s.mask_bits <> 0"},
	KindIPCustomFields: {doql: "SELECT cf.key, cf.value, i.ip_address, s.mask_bits FROM view_ipaddress_custom_fields_v1 cf " +
		"LEFT JOIN view_ipaddress_v1 i ON i.ipaddress_pk = cf.ipaddress_fk LEFT JOIN view_subnet_v1 s ON s.subnet_pk = i.subnet_fk"},
	KindConnections: {doql: "SELECT sd.name AS src_device, sp.port AS src_port, dd.name AS dst_device, dp.port AS dst_port FROM view_netport_v1 sp " +
		"JOIN view_netport_v1 dp ON dp.netport_pk = sp.remote_netport_fk JOIN view_device_v1 sd ON sd.device_pk = sp.device_fk " +
		"JOIN view_device_v1 dd ON dd.device_pk = dp.device_fk"},
	KindCircuits: {doql: "SELECT t.circuit_id, v.name AS vendor, t.type_name, t.status, t.turn_on_date, t.provision_date, t.bandwidth, t.unit, t.notes, t.tags, " +
		"t.origin_type, od.name AS origin_device, op.port AS origin_port, t.end_point_type, ed.name AS end_point_device, ep.port AS end_point_port " +
		"FROM view_telcocircuit_v1 t JOIN view_vendor_v1 v ON v.vendor_pk = t.vendor_fk " +
		"LEFT JOIN view_netport_v1 op ON op.netport_pk = t.origin_netport_fk LEFT JOIN view_device_v1 od ON od.device_pk = op.device_fk " +
		"LEFT JOIN view_netport_v1 ep ON ep.netport_pk = t.end_point_netport_fk LEFT JOIN view_device_v1 ed ON ed.device_pk = ep.device_fk"},
}

// APISource reads records from a live Device42 appliance.
type APISource struct {
	client *d42.Client
}

// NewAPISource wraps a Device42 client.
func NewAPISource(client *d42.Client) *APISource {
	return &APISource{client: client}
}

// Records implements RecordSource.
func (s *APISource) Records(ctx context.Context, kind Kind) ([]utils.Record, error) {
	req, ok := requests[kind]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	if req.doql != "" {
		return s.client.Query(ctx, req.doql)
	}
	return s.client.List(ctx, req.path, req.key)
}

// Ping checks the appliance is reachable.
func (s *APISource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// ExportSource reads records exported to object storage as <prefix>/<kind>.json
// or <prefix>/<kind>.yaml.
type ExportSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewExportSource creates a source reading from bucket under prefix.
func NewExportSource(client storage.Client, bucket, prefix string) *ExportSource {
	return &ExportSource{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName returns the object key of a kind with the given extension.
func (s *ExportSource) ObjectName(kind Kind, ext string) string {
	return path.Join(s.prefix, string(kind)+ext)
}

// Records implements RecordSource.
func (s *ExportSource) Records(ctx context.Context, kind Kind) ([]utils.Record, error) {
	for _, ext := range []string{".json", ".yaml"} {
		data, err := s.read(ctx, s.ObjectName(kind, ext))
		if err != nil {
			if isNoSuchKey(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read export %s: %w", s.ObjectName(kind, ext), err)
		}
		records, err := decodeRecords(data, ext)
		if err != nil {
			return nil, fmt.Errorf("failed to decode export %s: %w", s.ObjectName(kind, ext), err)
		}
		return records, nil
	}
	if optionalKinds[kind] {
		return nil, nil
	}
	return nil, fmt.Errorf("export for %s not found under %s/%s", kind, s.bucket, s.prefix)
}

// Ping verifies that the export prefix holds at least one object.
func (s *ExportSource) Ping(ctx context.Context) error {
	// stops the listing goroutine once the first object is seen
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: strings.Trim(s.prefix, "/") + "/", MaxKeys: 1}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		return obj.Err
	}
	return fmt.Errorf("no export found under %s/%s", s.bucket, s.prefix)
}

func (s *ExportSource) read(ctx context.Context, object string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func decodeRecords(data []byte, ext string) ([]utils.Record, error) {
	var rows []map[string]any
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	}
	out := make([]utils.Record, len(rows))
	for i, row := range rows {
		out[i] = utils.Record(row)
	}
	return out, nil
}
