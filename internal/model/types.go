// Package model defines the domain types for the dhi-eol CLI.
//
// All entities in this package represent the core data structures of the
// detection flow: normalized image references, the DHI identity derived
// from image labels, and the tag definitions returned by the Docker Scout
// catalog. Everything is transient — state lives in image metadata and in
// the remote catalog, never on disk.
package model

import (
	"fmt"
	"strings"
)

// knownRegistryPrefixes lists the registry prefixes that are stripped when
// normalizing an image reference. Docker Hub references can be written with
// or without the registry host and with or without the implicit "library/"
// namespace for official images; all of these spellings refer to the same
// repository.
//
// Only the first matching prefix is stripped. The "library/" variants come
// before their bare-host counterparts so that "docker.io/library/nginx" is
// not left with a dangling "library/" after stripping "docker.io/".
var knownRegistryPrefixes = []string{
	"docker.io/library/",
	"docker.io/",
	"index.docker.io/library/",
	"index.docker.io/",
}

// ImageRef is a normalized Docker image reference, split into its
// repository name and optional tag.
//
// The zero value represents "no reference". A reference without an explicit
// tag keeps Tag empty — the caller decides whether that means "latest"
// (Docker's pull default) or "unspecified" (tag matching fallback).
type ImageRef struct {
	// Repository is the normalized repository name with registry host,
	// "library/" namespace, and digest suffix removed.
	// Example: "docker.io/library/nginx:1.25" → "nginx".
	Repository string `json:"repository"`

	// Tag is the image tag, if one was specified. Empty when the reference
	// had no tag or was a pure digest reference.
	Tag string `json:"tag,omitempty"`
}

// String returns the canonical "repository:tag" form, or just the
// repository when no tag is set.
func (r ImageRef) String() string {
	if r.Tag == "" {
		return r.Repository
	}
	return r.Repository + ":" + r.Tag
}

// ParseImageRef normalizes a Docker image reference into an ImageRef.
//
// Handled formats:
//
//	nginx
//	nginx:1.25
//	library/nginx:1.25
//	docker.io/library/nginx:1.25
//	docker/nginx-unprivileged:latest
//	myregistry.com/org/image:tag
//	repo@sha256:abcd...
//
// Normalization steps, in order: strip a known registry prefix, truncate at
// the digest separator "@", split the tag at the last ":", and strip a
// leading "library/" for official images. The function never fails — an
// unrecognized reference is returned as-is with an empty tag.
func ParseImageRef(imageRef string) ImageRef {
	ref := strings.TrimSpace(imageRef)

	// Strip a known registry prefix. Only the first match applies.
	for _, prefix := range knownRegistryPrefixes {
		if strings.HasPrefix(ref, prefix) {
			ref = strings.TrimPrefix(ref, prefix)
			break
		}
	}

	// Digest references pin an exact manifest; the digest itself carries no
	// tag information, so everything after "@" is dropped.
	if i := strings.Index(ref, "@"); i >= 0 {
		ref = ref[:i]
	}

	// Split the tag at the LAST colon. Splitting at the first colon would
	// break references that contain a registry port (e.g. "localhost:5000/app").
	tag := ""
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		// A colon followed by a "/" belongs to a registry port, not a tag.
		if !strings.Contains(ref[i:], "/") {
			tag = ref[i+1:]
			ref = ref[:i]
		}
	}

	// Official images can still carry the "library/" namespace after the
	// registry host was stripped (e.g. "library/nginx").
	ref = strings.TrimPrefix(ref, "library/")

	return ImageRef{Repository: ref, Tag: tag}
}

// DHIInfo is the identity of a Docker Hardened Image base, derived from
// the com.docker.dhi.* labels on an image.
type DHIInfo struct {
	// Repository is the bare DHI repository name within the Docker Hub
	// catalog (e.g. "nginx-unprivileged"), extracted from the DHI URL label.
	Repository string `json:"repository"`

	// Version is the DHI version string from the version label.
	// May be empty — the label is optional.
	Version string `json:"version,omitempty"`
}

// TagDefinition is one entry of a DHI repository's tag catalog as returned
// by the Docker Scout API. A definition groups the tag aliases that point
// at the same image stream (e.g. "2", "2.39", "2.39.0") together with its
// support metadata.
type TagDefinition struct {
	// DisplayName is the human-readable name of the tag stream.
	DisplayName string `json:"displayName"`

	// TagNames lists all tag aliases belonging to this definition.
	TagNames []string `json:"tagNames"`

	// EndOfLife is the end-of-support date in "YYYY-MM-DD" form (it may
	// carry a time suffix, which is ignored). Empty means no planned EOL.
	EndOfLife string `json:"endOfLife,omitempty"`
}

// HasTag reports whether the given tag is one of the definition's aliases.
func (td TagDefinition) HasTag(tag string) bool {
	for _, tn := range td.TagNames {
		if tn == tag {
			return true
		}
	}
	return false
}

// Repository is one entry of the DHI catalog listing.
type Repository struct {
	// Name is the repository name within the DHI catalog.
	Name string `json:"name"`

	// Type categorizes the repository (e.g. "image").
	Type string `json:"type,omitempty"`
}

// ExitCode defines the CLI exit codes.
//
// The contract is deliberately narrow: the tool exits 0 on any completed
// analysis — including "not a hardened image", an image that could not be
// inspected, or a catalog lookup that found nothing — and exits 1 only for
// missing or unrecoverable authentication and for usage errors. Scripts
// that need the analysis outcome should consume the --json output instead
// of the exit code.
type ExitCode int

const (
	// ExitSuccess indicates the analysis completed.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates missing credentials, an unrecoverable
	// authentication failure, or invalid usage.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
