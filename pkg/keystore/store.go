package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/clawforge/web3wallet/pkg/logger"
)

// Store reads and writes keystore documents in a single wallet directory.
// Files are named <alias>.json and treated as immutable once written;
// overwriting replaces the whole file, never patches it.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the wallet directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for an alias.
func (s *Store) Path(alias string) string {
	return filepath.Join(s.dir, alias+".json")
}

// Save writes the document for its metadata alias. The write goes to a
// temporary file first and is renamed into place, so a crash mid-write never
// leaves a file that deserializes successfully. An existing alias is refused
// unless force is set.
func (s *Store) Save(doc *Document, force bool) (string, error) {
	alias := doc.Metadata.Alias
	if err := validateAlias(alias); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create wallet directory: %w", err)
	}

	path := s.Path(alias)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%w: %s", ErrAliasCollision, alias)
	}

	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write keystore file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize keystore file: %w", err)
	}

	logger.InfoCF("keystore", "Keystore saved", map[string]any{
		"alias":   alias,
		"address": doc.Metadata.Address,
		"path":    path,
	})
	return path, nil
}

// Load reads and decodes the named keystore file. The .json extension is
// optional.
func (s *Store) Load(name string) (*Document, error) {
	name = strings.TrimSuffix(name, ".json")
	if err := validateAlias(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read keystore file: %w", err)
	}
	return Decode(data)
}

// List returns the clear metadata of every keystore file in the wallet
// directory. No password is required. Files that fail to decode are skipped
// with a warning rather than aborting the listing.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wallet directory: %w", err)
	}

	var out []Metadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.WarnCF("keystore", "Skipping unreadable keystore file", map[string]any{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		doc, err := Decode(data)
		if err != nil {
			logger.WarnCF("keystore", "Skipping malformed keystore file", map[string]any{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		out = append(out, doc.Metadata)
	}
	return out, nil
}

// validateAlias rejects names that are empty or would escape the wallet
// directory.
func validateAlias(alias string) error {
	if alias == "" {
		return fmt.Errorf("%w: empty alias", ErrInvalidAlias)
	}
	if strings.ContainsAny(alias, `/\`) || strings.Contains(alias, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAlias, alias)
	}
	return nil
}
