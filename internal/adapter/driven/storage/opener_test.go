package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    Location
		wantErr bool
	}{
		{name: "local path", uri: "data/transactions.parquet", want: Location{Scheme: "file", Path: "data/transactions.parquet"}},
		{name: "file uri", uri: "file:///tmp/rates.parquet", want: Location{Scheme: "file", Path: "/tmp/rates.parquet"}},
		{name: "s3", uri: "s3://fraud-data/raw/transactions.parquet", want: Location{Scheme: "s3", Bucket: "fraud-data", Key: "raw/transactions.parquet"}},
		{name: "gcs", uri: "gs://fraud-data/rates.parquet", want: Location{Scheme: "gs", Bucket: "fraud-data", Key: "rates.parquet"}},
		{name: "s3 without key", uri: "s3://fraud-data", wantErr: true},
		{name: "unsupported scheme", uri: "ftp://host/file.parquet", wantErr: true},
		{name: "empty", uri: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	o := NewOpener(Options{})
	defer o.Close()

	obj, err := o.Open(context.Background(), path)
	require.NoError(t, err)
	defer obj.Close()

	buf := make([]byte, 3)
	_, err = obj.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, "456", string(buf))

	end, err := obj.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(10), end)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := NewOpener(Options{}).Open(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestMemoryObject(t *testing.T) {
	obj := newMemoryObject([]byte("abcdef"))

	buf := make([]byte, 2)
	_, err := obj.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "cd", string(buf))
	assert.NoError(t, obj.Close())
}
