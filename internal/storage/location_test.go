package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Location
		wantErr bool
	}{
		{name: "local path", raw: "exports/drive.json", want: Location{Path: "exports/drive.json"}},
		{name: "trims spaces", raw: "  drive.json ", want: Location{Path: "drive.json"}},
		{name: "bucket object", raw: "s3://snapshots/2024/drive.json", want: Location{Bucket: "snapshots", Key: "2024/drive.json"}},
		{name: "empty", raw: "", wantErr: true},
		{name: "bucket only", raw: "s3://snapshots", wantErr: true},
		{name: "bucket with slash", raw: "s3://snapshots/", wantErr: true},
		{name: "no bucket", raw: "s3:///drive.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "s3://b/k.json", Location{Bucket: "b", Key: "k.json"}.String())
	assert.Equal(t, "drive.json", Location{Path: "drive.json"}.String())
}

func TestReadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	data, err := ReadSnapshot(context.Background(), Location{Path: path}, S3Config{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = ReadSnapshot(context.Background(), Location{Path: path + ".missing"}, S3Config{})
	assert.ErrorContains(t, err, "read snapshot")

	_, err = ReadSnapshot(context.Background(), Location{Bucket: "b", Key: "k"}, S3Config{})
	assert.Error(t, err, "bucket reads need an endpoint")
}
