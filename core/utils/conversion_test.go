package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 42, 42},
		{"float", 41.9, 41},
		{"string", " 7 ", 7},
		{"decimal string", "1.0", 1},
		{"bytes", []byte("12"), 12},
		{"nil", nil, 0},
		{"garbage", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("yes"))
	assert.True(t, ToBool("TRUE"))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}

func TestToStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ToStringSlice("a, b,"))
	assert.Equal(t, []string{"x", "1"}, ToStringSlice([]any{"x", nil, 1}))
	assert.Nil(t, ToStringSlice(nil))
}

func TestRecord(t *testing.T) {
	r := Record{
		"name":    "sw1",
		"size":    "2",
		"lat":     "51.5",
		"tags":    "core,edge",
		"empty":   "",
		"in_svc":  "yes",
		"members": []any{map[string]any{"name": "m1"}, "skip"},
	}

	assert.Equal(t, "sw1", r.String("name"))
	assert.Equal(t, "", r.String("missing"))
	assert.Equal(t, 2, r.Int("size"))
	assert.Equal(t, 51.5, r.Float("lat"))
	assert.Equal(t, []string{"core", "edge"}, r.Strings("tags"))
	assert.True(t, r.Bool("in_svc"))
	assert.False(t, r.Has("empty"))
	assert.True(t, r.Has("name"))
	assert.Len(t, r.Records("members"), 1)
}
