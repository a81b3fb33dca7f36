package device42

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"inventory-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var noSuchKey = minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestExportSource_Records(t *testing.T) {
	ctx := context.Background()

	t.Run("reads json export", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "inventory", "exports/buildings.json", mock.Anything).
			Return(body(`[{"name":"DC1","latitude":51.5}]`), nil)

		src := NewExportSource(client, "inventory", "exports")
		recs, err := src.Records(ctx, KindBuildings)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "DC1", recs[0].String("name"))
		assert.Equal(t, 51.5, recs[0].Float("latitude"))
		client.AssertExpectations(t)
	})

	t.Run("falls back to yaml", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "inventory", "exports/racks.json", mock.Anything).Return(nil, noSuchKey)
		client.On("GetObject", ctx, "inventory", "exports/racks.yaml", mock.Anything).
			Return(body("- name: RK1\n  building: DC1\n  room: R1\n  size: 42\n"), nil)

		src := NewExportSource(client, "inventory", "exports")
		recs, err := src.Records(ctx, KindRacks)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, 42, recs[0].Int("size"))
		assert.Equal(t, "R1", recs[0].String("room"))
	})

	t.Run("optional kinds may be missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "inventory", mock.Anything, mock.Anything).Return(nil, noSuchKey)

		src := NewExportSource(client, "inventory", "exports")
		recs, err := src.Records(ctx, KindPortCustomFields)
		require.NoError(t, err)
		assert.Empty(t, recs)

		_, err = src.Records(ctx, KindDevices)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("storage errors are returned", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "inventory", "exports/devices.json", mock.Anything).Return(nil, errors.New("connection refused"))

		src := NewExportSource(client, "inventory", "exports")
		_, err := src.Records(ctx, KindDevices)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("malformed export", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "inventory", "exports/vendors.json", mock.Anything).Return(body(`{"not":"a list"}`), nil)

		src := NewExportSource(client, "inventory", "exports")
		_, err := src.Records(ctx, KindVendors)
		assert.ErrorContains(t, err, "failed to decode")
	})
}

func TestRequests_CoverEveryKind(t *testing.T) {
	for _, kind := range Kinds {
		req, ok := requests[kind]
		assert.True(t, ok, "no request for %s", kind)
		assert.True(t, req.doql != "" || (req.path != "" && req.key != ""), "incomplete request for %s", kind)
	}
}

func TestExportSource_Ping(t *testing.T) {
	ctx := context.Background()
	exportsPrefix := mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == "exports/" })

	t.Run("export present", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "exports/buildings.json"}
		close(ch)
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "inventory", exportsPrefix).Return((<-chan minio.ObjectInfo)(ch))

		assert.NoError(t, NewExportSource(client, "inventory", "/exports/").Ping(ctx))
	})

	t.Run("export missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "inventory", exportsPrefix).Return(nil)

		err := NewExportSource(client, "inventory", "exports").Ping(ctx)
		assert.ErrorContains(t, err, "no export found")
	})

	t.Run("listing error", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "inventory", exportsPrefix).Return((<-chan minio.ObjectInfo)(ch))

		assert.ErrorContains(t, NewExportSource(client, "inventory", "exports").Ping(ctx), "access denied")
	})
}
