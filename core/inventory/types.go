package inventory

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Type identifies an entity type (and its snapshot bucket).
type Type string

const (
	TypeBuilding           Type = "building"
	TypeRoom               Type = "room"
	TypeRack               Type = "rack"
	TypeVendor             Type = "vendor"
	TypeHardware           Type = "hardware"
	TypeCluster            Type = "cluster"
	TypeVLAN               Type = "vlan"
	TypeDevice             Type = "device"
	TypePort               Type = "port"
	TypeVRF                Type = "vrf"
	TypeSubnet             Type = "subnet"
	TypeIPAddress          Type = "ipaddress"
	TypeProvider           Type = "provider"
	TypeCircuit            Type = "circuit"
	TypeCircuitTermination Type = "circuit_termination"
	TypeConnection         Type = "connection"
)

// Order is the fixed dependency order, parents before children.
var Order = []Type{
	TypeBuilding,
	TypeRoom,
	TypeRack,
	TypeVendor,
	TypeHardware,
	TypeCluster,
	TypeVLAN,
	TypeDevice,
	TypePort,
	TypeVRF,
	TypeSubnet,
	TypeIPAddress,
	TypeProvider,
	TypeCircuit,
	TypeCircuitTermination,
	TypeConnection,
}

// Reverse returns Order from children to parents.
func Reverse() []Type {
	out := make([]Type, len(Order))
	for i, t := range Order {
		out[len(Order)-1-i] = t
	}
	return out
}

// Priority returns the position of t in Order, or -1 for unknown types.
func (t Type) Priority() int {
	for i, o := range Order {
		if o == t {
			return i
		}
	}
	return -1
}

// KeySeparator joins the parts of a composite natural key.
const KeySeparator = "|"

// JoinKey builds a composite key from its parts.
func JoinKey(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

// SplitKey is the inverse of JoinKey.
func SplitKey(key string) []string {
	return strings.Split(key, KeySeparator)
}

// Attrs holds the compared (non-identity) fields of an entity, keyed by column name.
type Attrs map[string]any

// Ref is a weak reference from one entity to another by type and key.
type Ref struct {
	Type Type   `json:"type"`
	Key  string `json:"key"`
}

// Entity is implemented by every inventory model.
type Entity interface {
	// EntityType returns the bucket the entity belongs to.
	EntityType() Type
	// Key derives the composite natural key from the identity fields.
	// It fails with ErrKeyDerivation when a required identity field is empty.
	Key() (string, error)
	// Attrs returns the compared fields in canonical form.
	Attrs() Attrs
	// Refs returns the entities this one points at.
	Refs() []Ref
	// RecordID returns the target store row id, or 0 for source entities.
	RecordID() uint
}

// Record carries the target store bookkeeping embedded in every model.
// Neither field takes part in comparison.
type Record struct {
	ID         uint   `gorm:"primaryKey" json:"-" yaml:"-"`
	NaturalKey string `gorm:"column:natural_key;size:512;uniqueIndex" json:"-" yaml:"-"`
}

// RecordID implements Entity.
func (r Record) RecordID() uint { return r.ID }

// CustomField is one Device42 custom field.
type CustomField struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// CustomFields is stored as a JSON column and always compared sorted by key.
type CustomFields []CustomField

// Sorted returns a sorted, non-nil copy.
func (c CustomFields) Sorted() CustomFields {
	out := make(CustomFields, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Get returns the value for key and whether it was present.
func (c CustomFields) Get(key string) (string, bool) {
	for _, cf := range c {
		if cf.Key == key {
			return cf.Value, true
		}
	}
	return "", false
}

// GormDataType stores the list as text.
func (CustomFields) GormDataType() string { return "text" }

// Value implements driver.Valuer.
func (c CustomFields) Value() (driver.Value, error) {
	b, err := json.Marshal(c.Sorted())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *CustomFields) Scan(src any) error {
	return scanJSON(src, c)
}

// StringList is a sorted list of strings stored as a JSON column (tags, members, vlans).
type StringList []string

// Sorted returns a sorted, non-nil copy.
func (s StringList) Sorted() StringList {
	out := make(StringList, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

// Contains reports whether v is in the list.
func (s StringList) Contains(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// GormDataType stores the list as text.
func (StringList) GormDataType() string { return "text" }

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(s.Sorted())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src any) error {
	return scanJSON(src, s)
}

func scanJSON(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
