package docker

import (
	"strings"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// Label key constants define the image labels the CLI inspects. Docker
// Hardened Images stamp their provenance on derived images via the
// com.docker.dhi.* labels; the org.opencontainers.* base labels are the
// generic OCI annotations describing the build's base image.
const (
	// LabelDHIURL points at the Docker Hub page of the DHI base repository.
	// Its presence is the sole signal that an image derives from a DHI base.
	// Example value: "https://hub.docker.com/r/docker/nginx-unprivileged".
	LabelDHIURL = "com.docker.dhi.url"

	// LabelDHIVersion carries the DHI base version string. Optional.
	LabelDHIVersion = "com.docker.dhi.version"

	// LabelDHIEOL carries an embedded end-of-life date for the DHI base,
	// when the publisher chose to bake it in. Optional; absence means
	// the EOL must be resolved via the Scout catalog (or is unplanned).
	LabelDHIEOL = "com.docker.dhi.eol"

	// LabelBaseName is the OCI annotation naming the image's base reference.
	LabelBaseName = "org.opencontainers.image.base.name"

	// LabelBaseDigest is the OCI annotation carrying the base image digest.
	LabelBaseDigest = "org.opencontainers.image.base.digest"
)

// ExtractDHIInfo derives the DHI identity from an image's label set.
//
// Returns (info, true) when the image carries the DHI URL label, with the
// URL reduced to a bare repository name, and the zero DHIInfo and false
// otherwise. A nil or empty label map is simply "not a DHI".
//
// URL reduction rules, applied to the trimmed label value:
//   - a Docker Hub page URL keeps the path after the last "/r/"
//     (e.g. "https://hub.docker.com/r/docker/nginx-unprivileged"
//     → "docker/nginx-unprivileged")
//   - any other http(s) URL keeps its last path segment
//   - anything else is assumed to already be a repository name
func ExtractDHIInfo(labels map[string]string) (model.DHIInfo, bool) {
	dhiURL := labels[LabelDHIURL]
	if dhiURL == "" {
		return model.DHIInfo{}, false
	}

	repo := strings.TrimRight(dhiURL, "/")
	if i := strings.LastIndex(repo, "/r/"); i >= 0 {
		repo = repo[i+len("/r/"):]
	} else if strings.HasPrefix(repo, "http") {
		if i := strings.LastIndex(repo, "/"); i >= 0 {
			repo = repo[i+1:]
		}
	}

	return model.DHIInfo{
		Repository: repo,
		Version:    labels[LabelDHIVersion],
	}, true
}

// ExtractBaseImage returns the OCI base image annotations (reference and
// digest) from a label set. Either value may be empty — the annotations
// are optional and many builders do not emit them.
func ExtractBaseImage(labels map[string]string) (baseName, baseDigest string) {
	return labels[LabelBaseName], labels[LabelBaseDigest]
}
