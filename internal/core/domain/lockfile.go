package domain

import (
	"encoding/hex"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// SupportedLockVersion is the lock file format version this tool reads.
const SupportedLockVersion = 1

// DependencyLock represents the complete pinned firmware dependency set.
// It is a reproducible snapshot: every entry carries the exact source URL
// and content checksum of one dependency archive.
type DependencyLock struct {
	// Version is the lock file format version.
	Version int

	// Dependencies maps canonical name@version keys to their pinned sources.
	Dependencies map[string]LockSource

	// Overrides maps name@version keys to replacement sources, typically a
	// local mirror. An override replaces both the URL and the checksum.
	Overrides map[string]LockSource
}

// LockSource pins a dependency to a source archive.
type LockSource struct {
	// URL is where the archive is fetched from (http, https, or file).
	URL string

	// SHA256 is the hex-encoded checksum of the archive bytes.
	SHA256 string
}

// LockEntry is one resolved dependency with its effective source after
// overrides are applied.
type LockEntry struct {
	// Key is the canonical name@version identifier.
	Key string

	// URL is the effective source URL.
	URL string

	// SHA256 is the effective hex-encoded archive checksum, lowercased.
	SHA256 string
}

// Validate checks the lock version, that every source is complete, and that
// overrides only reference declared dependencies.
func (l *DependencyLock) Validate() error {
	if l.Version != SupportedLockVersion {
		return zerr.With(ErrUnsupportedLockVersion, "version", l.Version)
	}

	for key, src := range l.Dependencies {
		if err := validateSource(key, src); err != nil {
			return err
		}
	}

	for key, src := range l.Overrides {
		if _, ok := l.Dependencies[key]; !ok {
			err := zerr.With(ErrInvalidLockEntry, "override", key)
			return zerr.With(err, "reason", "override does not match any dependency")
		}
		if err := validateSource(key, src); err != nil {
			return err
		}
	}

	return nil
}

// Resolved returns the dependency entries in deterministic key order with
// overrides applied.
func (l *DependencyLock) Resolved() []LockEntry {
	keys := make([]string, 0, len(l.Dependencies))
	for key := range l.Dependencies {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	entries := make([]LockEntry, 0, len(keys))
	for _, key := range keys {
		src := l.Dependencies[key]
		if override, ok := l.Overrides[key]; ok {
			src = override
		}
		entries = append(entries, LockEntry{
			Key:    key,
			URL:    src.URL,
			SHA256: strings.ToLower(src.SHA256),
		})
	}
	return entries
}

func validateSource(key string, src LockSource) error {
	if src.URL == "" || src.SHA256 == "" {
		return zerr.With(ErrInvalidLockEntry, "dependency", key)
	}
	if raw, err := hex.DecodeString(src.SHA256); err != nil || len(raw) != 32 {
		err := zerr.With(ErrInvalidLockEntry, "dependency", key)
		return zerr.With(err, "reason", "sha256 must be 64 hex characters")
	}
	return nil
}
