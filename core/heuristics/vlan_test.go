package heuristics

import (
	"testing"

	"inventory-sync/core/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVLAN(t *testing.T) {
	s := inventory.New()
	for _, v := range []inventory.VLAN{
		{Site: "DC1", VID: 10, Name: "users"},
		{VID: 20, Name: "voice"},
		{Site: "DC2", VID: 30, Name: "mgmt"},
		{Site: "DC1", VID: 30, Name: "mgmt"},
		{Site: "DC3", VID: 40, Name: "iot"},
	} {
		_, err := s.Insert(v)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		vid     int
		vname   string
		site    string
		want    string
		wantErr error
	}{
		{"exact site match", 10, "users", "DC1", "DC1|10|users", nil},
		{"siteless fallback", 20, "voice", "DC1", "|20|voice", nil},
		{"known site without match", 10, "users", "DC9", "", ErrUnresolved},
		{"unknown site single candidate", 40, "iot", "", "DC3|40|iot", nil},
		{"unknown site picks first in source order", 30, "mgmt", "", "DC2|30|mgmt", ErrAmbiguous},
		{"vlan zero", 0, "native", "DC1", "", ErrUnresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVLAN(s, tt.vid, tt.vname, tt.site)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSiteLabel(t *testing.T) {
	assert.Equal(t, "Unknown", SiteLabel(""))
	assert.Equal(t, "DC1", SiteLabel("DC1"))
}
