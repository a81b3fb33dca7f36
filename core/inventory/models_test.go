package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels_Keys(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		want    string
		wantErr bool
	}{
		{"building", Building{Name: "DC1"}, "DC1", false},
		{"building without name", Building{}, "", true},
		{"rack", Rack{Building: "DC1", Room: "R1", Name: "RK1"}, "DC1|R1|RK1", false},
		{"port", Port{Device: "sw1", Name: "Gi0/1"}, "sw1|Gi0/1", false},
		{"subnet", Subnet{VRF: "blue", Network: "10.0.0.0", MaskBits: 24}, "blue|10.0.0.0/24", false},
		{"subnet with zero mask", Subnet{Network: "10.0.0.0"}, "", true},
		{"siteless vlan", VLAN{VID: 10, Name: "users"}, "|10|users", false},
		{"vlan zero", VLAN{VID: 0, Name: "native"}, "", true},
		{"vlan out of range", VLAN{VID: 4095, Name: "x"}, "", true},
		{"ip in global table", IPAddress{Address: "10.0.0.1/24"}, "|10.0.0.1/24", false},
		{"circuit", Circuit{Provider: "Telco", CircuitID: "C-1"}, "Telco|C-1", false},
		{"termination needs side", CircuitTermination{Provider: "Telco", CircuitID: "C-1", Side: "B"}, "", true},
		{"termination", CircuitTermination{Provider: "Telco", CircuitID: "C-1", Side: "Z"}, "Telco|C-1|Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entity.Key()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrKeyDerivation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnection_CanonicalKey(t *testing.T) {
	a := InterfaceEndpoint("sw1", "Gi0/1")
	b := InterfaceEndpoint("sw2", "Gi0/2")

	forward, err := NewConnection(a, b, "connected").Key()
	require.NoError(t, err)
	backward, err := NewConnection(b, a, "connected").Key()
	require.NoError(t, err)
	assert.Equal(t, forward, backward)

	// Struct literal in reverse order derives the same key.
	literal, err := Connection{A: b, B: a}.Key()
	require.NoError(t, err)
	assert.Equal(t, forward, literal)

	_, err = NewConnection(a, InterfaceEndpoint("", "Gi0/2"), "").Key()
	assert.ErrorIs(t, err, ErrKeyDerivation)
}

func TestConnection_Refs(t *testing.T) {
	c := NewConnection(InterfaceEndpoint("sw1", "Gi0/1"), CircuitEndpoint("Telco", "C-1", "A"), "connected")
	assert.ElementsMatch(t, []Ref{
		{Type: TypePort, Key: "sw1|Gi0/1"},
		{Type: TypeCircuitTermination, Key: "Telco|C-1|A"},
	}, c.Refs())
}

func TestAttrs_Canonical(t *testing.T) {
	d1 := Device{Name: "sw1", Tags: StringList{"b", "a"}, CustomFields: CustomFields{{Key: "z", Value: "1"}, {Key: "a", Value: "2"}}}
	d2 := Device{Name: "sw1", Tags: StringList{"a", "b"}, CustomFields: CustomFields{{Key: "a", Value: "2"}, {Key: "z", Value: "1"}}}
	assert.Equal(t, d1.Attrs(), d2.Attrs())

	var empty Device
	assert.Equal(t, StringList{}, empty.Attrs()["tags"])

	b := Building{Name: "DC1", Latitude: 51.50735091, Longitude: -0.12775829}
	assert.Equal(t, 51.507351, b.Attrs()["latitude"])
	assert.Equal(t, -0.127758, b.Attrs()["longitude"])
}

func TestDevice_Refs(t *testing.T) {
	d := Device{Name: "sw1", Site: "DC1", Room: "R1", Rack: "RK1", Hardware: "C9300", Cluster: "stack1"}
	assert.Equal(t, []Ref{
		{Type: TypeBuilding, Key: "DC1"},
		{Type: TypeRoom, Key: "DC1|R1"},
		{Type: TypeRack, Key: "DC1|R1|RK1"},
		{Type: TypeHardware, Key: "C9300"},
		{Type: TypeCluster, Key: "stack1"},
	}, d.Refs())
	assert.False(t, d.IsChassisMaster())
	assert.True(t, Device{Name: "stack1", Cluster: "stack1"}.IsChassisMaster())
}

func TestModel_Registry(t *testing.T) {
	assert.Len(t, Models(), len(Order))
	for i, m := range Models() {
		assert.Equal(t, Order[i], m.EntityType())
	}
	_, ok := Model(Type("nope"))
	assert.False(t, ok)
}

func TestOrder(t *testing.T) {
	rev := Reverse()
	assert.Equal(t, TypeConnection, rev[0])
	assert.Equal(t, TypeBuilding, rev[len(rev)-1])
	assert.Less(t, TypeVLAN.Priority(), TypePort.Priority())
	assert.Equal(t, -1, Type("nope").Priority())
}

func TestCustomFields_ValueScan(t *testing.T) {
	in := CustomFields{{Key: "owner", Value: "netops"}, {Key: "cost", Value: "12"}}
	v, err := in.Value()
	require.NoError(t, err)

	var out CustomFields
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in.Sorted(), out)

	val, ok := out.Get("owner")
	assert.True(t, ok)
	assert.Equal(t, "netops", val)
}
