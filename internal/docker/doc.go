// Package docker provides the Docker Engine API wrappers used by the
// dhi-eol CLI to read image metadata.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Image label retrieval, pulling the image once when it is not
//     available locally
//   - Extraction of the Docker Hardened Image identity from the
//     com.docker.dhi.* labels
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
//
// All operations here fail softly: a missing daemon, a failed pull, or an
// uninspectable image degrade to "no labels" rather than aborting the CLI.
package docker
