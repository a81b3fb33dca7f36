package heuristics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedMbps(t *testing.T) {
	assert.Equal(t, 1000, SpeedMbps("1.0 Gbps"))
	assert.Equal(t, 100, SpeedMbps("100 Mbps"))
	assert.Equal(t, 10000, SpeedMbps("10G"))
	assert.Equal(t, 0, SpeedMbps(""))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "sw1", Sanitize("sw\u200b1\r"))
	assert.Equal(t, "15.2(4)E", OSVersion("IOS 15.2(4)E"))
}

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "sw1", DeviceName(" sw\u200b1\r "))
	assert.Len(t, DeviceName(strings.Repeat("a", 80)), 64)
}

func TestMACAddress(t *testing.T) {
	assert.Equal(t, "00:11:22:33:4", MACAddress("00:11:22:33:44:55"))
	assert.Equal(t, "001122334455", MACAddress(" 001122334455 "))
}

func TestMTU(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{9000, 9000},
		{1, 1},
		{65536, 65536},
		{0, 1500},
		{-1, 1500},
		{65537, 1500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MTU(tt.in), tt.in)
	}
}

func TestOSVersion(t *testing.T) {
	assert.Equal(t, "15.2(4)", OSVersion("IOS 15.2(4)"))
	assert.Equal(t, "9.3(5)", OSVersion("9.3(5)"))
}

func TestChassisPosition(t *testing.T) {
	tests := []struct {
		name   string
		device string
		index  int
		master bool
		want   int
	}{
		{"master", "stack1", 3, true, 0},
		{"switch suffix", "stack1 - Switch 2", 0, false, 2},
		{"switch zero is not a master", "stack1 - Switch 0", 4, false, 1},
		{"node suffix", "fw1 - Node 0", 5, false, 1},
		{"node one", "fw-pair - Node 1", 0, false, 2},
		{"member index", "stack1-b", 1, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChassisPosition(tt.device, tt.index, tt.master))
		})
	}
}
