// Package markdown implements the record store over a directory of markdown
// documents with YAML frontmatter, one document per record.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// extension is the filename extension for record documents.
const extension = ".md"

// Config is the configuration for the markdown record store.
// Dir: Directory holding the record documents (required, created if absent)
// UserID: When set, LoadAll returns only records owned by this user
type Config struct {
	Dir    string
	UserID string
}

// Store is a flat-file record store.
//
// It implements the store.RecordStore interface over a single configured
// directory. Document identity is the filename without extension. The store
// assumes a single operator driving one commit at a time; concurrent writers
// from two processes are unsupported.
type Store struct {
	dir    string
	userID string
}

// New creates a new markdown record store rooted at cfg.Dir.
//
// The directory is created if it does not exist. Returns an error if the
// configuration is invalid or the directory cannot be created.
func New(cfg *Config) (*Store, error) {
	if cfg == nil || cfg.Dir == "" {
		return nil, fmt.Errorf("markdown store: directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("markdown store: create directory: %w", err)
	}
	return &Store{dir: cfg.Dir, userID: cfg.UserID}, nil
}

// LoadAll enumerates all record documents in the directory.
//
// Documents are processed in filename order. A document that fails to parse
// is reported in the malformed list under its identity and never aborts the
// load. When the store is configured with a user filter, records owned by a
// different user are skipped (records without an owner are always included).
func (s *Store) LoadAll(ctx context.Context) ([]*store.Record, []store.MalformedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var (
		records   []*store.Record
		malformed []store.MalformedDocument
	)
	for _, name := range names {
		identity := strings.TrimSuffix(name, extension)

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			malformed = append(malformed, store.MalformedDocument{
				Identity: identity,
				Reason:   err.Error(),
			})
			continue
		}

		record, err := DecodeDocument(identity, data)
		if err != nil {
			malformed = append(malformed, store.MalformedDocument{
				Identity: identity,
				Reason:   err.Error(),
			})
			continue
		}

		if s.userID != "" && record.UserID != "" && record.UserID != s.userID {
			continue
		}
		records = append(records, record)
	}

	return records, malformed, nil
}

// Identities enumerates every document identity in the directory.
//
// Malformed documents and records owned by other users are included: the
// file occupies its identity whether or not it parses, and a new record
// must never rename over it.
func (s *Store) Identities(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", s.dir, err)
	}

	var identities []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		identities = append(identities, strings.TrimSuffix(entry.Name(), extension))
	}
	sort.Strings(identities)
	return identities, nil
}

// Save persists a record to its document.
//
// The write goes to a temporary file in the same directory first and is
// then renamed over the destination, so a reader never observes a partial
// document: either the new content is fully in place or the previous
// content remains. Failures are reported as store.ErrWrite.
func (s *Store) Save(ctx context.Context, record *store.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: nil record", store.ErrWrite)
	}
	if err := validIdentity(record.Identity); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}

	data, err := EncodeDocument(record)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+record.Identity+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}

	if err := os.Rename(tmpName, s.Path(record.Identity)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

// Delete removes the document for the given identity.
//
// Returns store.ErrNotFound if no such document exists.
func (s *Store) Delete(ctx context.Context, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validIdentity(identity); err != nil {
		return err
	}
	if err := os.Remove(s.Path(identity)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", store.ErrNotFound, identity)
		}
		return fmt.Errorf("delete %s: %w", identity, err)
	}
	return nil
}

// Close closes the store. The markdown store holds no resources; this
// method is retained for interface compatibility.
func (s *Store) Close() error {
	return nil
}

// Path returns the document path for an identity.
func (s *Store) Path(identity string) string {
	return filepath.Join(s.dir, identity+extension)
}

// validIdentity rejects identities that are empty or would escape the
// store directory.
func validIdentity(identity string) error {
	if identity == "" {
		return fmt.Errorf("empty identity")
	}
	if strings.ContainsAny(identity, `/\`) || identity != filepath.Base(identity) {
		return fmt.Errorf("invalid identity %q", identity)
	}
	return nil
}
