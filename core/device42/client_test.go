package device42

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Host: srv.URL, Username: "admin", Password: "secret", PageSize: 2})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("MissingHost", func(t *testing.T) {
		_, err := NewClient(Config{})
		assert.Error(t, err)
	})

	t.Run("HostWithoutScheme", func(t *testing.T) {
		c, err := NewClient(Config{Host: "device42.example.com"})
		require.NoError(t, err)
		assert.Equal(t, "https://device42.example.com/api_endpoint", c.URL("api_endpoint"))
		assert.Equal(t, "https://device42.example.com/api/1.0/devices/all/?is_it_switch=yes", c.URL("/api/1.0/devices/all/?is_it_switch=yes"))
	})
}

func TestClient_List(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/api/1.0/buildings/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("_paging"))
		assert.Equal(t, "1", r.URL.Query().Get("_return_as_object"))
		assert.Equal(t, "2", r.URL.Query().Get("_max_results"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		all := []map[string]any{{"name": "DC1"}, {"name": "DC2"}, {"name": "DC3"}}
		end := offset + 2
		if end > len(all) {
			end = len(all)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_count": len(all),
			"offset":      offset,
			"limit":       2,
			"buildings":   all[offset:end],
		})
	})

	records, err := client.List(context.Background(), "api/1.0/buildings/", "buildings")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, records, 3)
	assert.Equal(t, "DC3", records[2].String("name"))
}

func TestClient_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v1.0/query/", r.URL.Path)
		assert.Equal(t, "SELECT v.vlan_pk, v.name FROM view_vlan_v1 v", r.URL.Query().Get("query"))
		assert.Equal(t, "json", r.URL.Query().Get("output_type"))
		_, _ = w.Write([]byte(`[{"vlan_pk": 1, "name": "users"}, {"vlan_pk": 2, "name": "voice"}]`))
	})

	rows, err := client.Query(context.Background(), "SELECT v.vlan_pk, v.name FROM view_vlan_v1 v")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[1].Int("vlan_pk"))
}

func TestClient_Errors(t *testing.T) {
	t.Run("StatusError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		err := client.Ping(context.Background())
		assert.ErrorIs(t, err, ErrStatus)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})
		_, err := client.Query(context.Background(), "SELECT 1")
		assert.Error(t, err)
	})

	t.Run("Ping", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("_max_results"))
			_, _ = w.Write([]byte(`{"buildings": []}`))
		})
		assert.NoError(t, client.Ping(context.Background()))
	})
}
