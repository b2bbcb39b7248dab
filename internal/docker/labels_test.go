package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractDHIInfo verifies the hardened-image detection and the
// reduction of the DHI URL label to a bare repository name.
func TestExtractDHIInfo(t *testing.T) {
	tests := []struct {
		name        string
		labels      map[string]string
		wantOK      bool
		wantRepo    string
		wantVersion string
	}{
		{
			name: "hub page URL with /r/ path",
			labels: map[string]string{
				LabelDHIURL:     "https://hub.docker.com/r/docker/nginx-unprivileged",
				LabelDHIVersion: "1.25",
			},
			wantOK:      true,
			wantRepo:    "docker/nginx-unprivileged",
			wantVersion: "1.25",
		},
		{
			name: "trailing slashes are stripped before reduction",
			labels: map[string]string{
				LabelDHIURL: "https://hub.docker.com/r/docker/python///",
			},
			wantOK:   true,
			wantRepo: "docker/python",
		},
		{
			name: "generic http URL keeps the last path segment",
			labels: map[string]string{
				LabelDHIURL: "https://example.com/catalog/nginx-unprivileged",
			},
			wantOK:   true,
			wantRepo: "nginx-unprivileged",
		},
		{
			name: "bare repository name passes through",
			labels: map[string]string{
				LabelDHIURL: "nginx-unprivileged",
			},
			wantOK:   true,
			wantRepo: "nginx-unprivileged",
		},
		{
			name: "version label is optional",
			labels: map[string]string{
				LabelDHIURL: "https://hub.docker.com/r/docker/golang",
			},
			wantOK:      true,
			wantRepo:    "docker/golang",
			wantVersion: "",
		},
		{
			name: "no DHI URL label means not hardened",
			labels: map[string]string{
				"org.opencontainers.image.source": "https://github.com/example/app",
				LabelDHIVersion:                   "1.25",
			},
			wantOK: false,
		},
		{
			name:   "empty label map",
			labels: map[string]string{},
			wantOK: false,
		},
		{
			name:   "nil label map",
			labels: nil,
			wantOK: false,
		},
		{
			name: "empty URL value is treated as absent",
			labels: map[string]string{
				LabelDHIURL: "",
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := ExtractDHIInfo(tt.labels)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantRepo, info.Repository)
			assert.Equal(t, tt.wantVersion, info.Version)
		})
	}
}

// TestExtractBaseImage verifies retrieval of the OCI base image annotations.
func TestExtractBaseImage(t *testing.T) {
	t.Run("both annotations present", func(t *testing.T) {
		name, digest := ExtractBaseImage(map[string]string{
			LabelBaseName:   "docker.io/library/alpine:3.20",
			LabelBaseDigest: "sha256:0123456789abcdef",
		})
		assert.Equal(t, "docker.io/library/alpine:3.20", name)
		assert.Equal(t, "sha256:0123456789abcdef", digest)
	})

	t.Run("absent annotations yield empty strings", func(t *testing.T) {
		name, digest := ExtractBaseImage(nil)
		assert.Empty(t, name)
		assert.Empty(t, digest)
	})
}
