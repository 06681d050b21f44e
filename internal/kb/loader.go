package kb

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"oak/internal/diag"
)

var (
	// ErrNotFound indicates a hardware identifier that is not in the
	// knowledge base.
	ErrNotFound = errors.New("hardware profile not found")
	// ErrDuplicateIdentifier indicates two descriptor files claiming the
	// same identifier, which is a fatal load error.
	ErrDuplicateIdentifier = errors.New("duplicate hardware identifier")
)

// hardwareSubdir is the directory under the knowledge-base root that holds
// one JSON descriptor per device.
const hardwareSubdir = "hardware"

// KnowledgeBase holds the loaded hardware profiles keyed by identifier.
type KnowledgeBase struct {
	hardware map[string]*HardwareProfile
}

// Load reads every hardware descriptor under root. Malformed or invalid
// individual files are skipped with a diagnostic; duplicate identifiers
// abort the whole load.
func Load(fsys afero.Fs, root string) (*KnowledgeBase, []diag.Diagnostic, error) {
	isDir, err := afero.DirExists(fsys, root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access knowledge base path %s: %w", root, err)
	}
	if !isDir {
		return nil, nil, fmt.Errorf("knowledge base path is not a directory: %s", root)
	}

	kb := &KnowledgeBase{hardware: make(map[string]*HardwareProfile)}
	var dc diag.Collector

	hwDir := filepath.Join(root, hardwareSubdir)
	if isDir, err := afero.DirExists(fsys, hwDir); err != nil {
		return nil, nil, fmt.Errorf("failed to access %s: %w", hwDir, err)
	} else if !isDir {
		// No profiles yet; an empty knowledge base is valid.
		return kb, nil, nil
	}

	paths, err := afero.Glob(fsys, filepath.Join(hwDir, "*.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list hardware profiles in %s: %w", hwDir, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			dc.Warnf("profile_unreadable", "knowledge_base",
				fmt.Sprintf("failed to read %s: %v; skipping", filepath.Base(path), err))
			continue
		}

		var profile HardwareProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			dc.Warnf("profile_malformed", "knowledge_base",
				fmt.Sprintf("failed to decode %s: %v; skipping", filepath.Base(path), err))
			continue
		}
		if err := profile.Validate(); err != nil {
			dc.Warnf("profile_invalid", "knowledge_base",
				fmt.Sprintf("invalid profile in %s: %v; skipping", filepath.Base(path), err))
			continue
		}

		if _, exists := kb.hardware[profile.Identifier]; exists {
			return nil, dc.All(), fmt.Errorf("%w: %q in %s", ErrDuplicateIdentifier, profile.Identifier, filepath.Base(path))
		}
		kb.hardware[profile.Identifier] = &profile
	}

	return kb, dc.All(), nil
}

// Get returns the profile for the given identifier.
func (kb *KnowledgeBase) Get(identifier string) (*HardwareProfile, error) {
	profile, ok := kb.hardware[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, identifier)
	}
	return profile, nil
}

// List returns all loaded identifiers in sorted order.
func (kb *KnowledgeBase) List() []string {
	ids := make([]string, 0, len(kb.hardware))
	for id := range kb.hardware {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
