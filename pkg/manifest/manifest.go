// Package manifest reads and writes package.json documents while preserving
// everything it does not own. The document is held as an ordered map so that
// key order survives a round-trip, and write-back only ever replaces the two
// dependency mappings; all other top-level fields pass through untouched.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"
)

// Well-known dependency group fields of a package.json document.
const (
	// DependenciesField is the runtime dependency mapping.
	DependenciesField = "dependencies"
	// DevDependenciesField is the development dependency mapping.
	DevDependenciesField = "devDependencies"
)

// Manifest is a parsed package.json document.
//
// Fields:
//   - Path: Filesystem location the manifest was loaded from
//   - root: The full document as an insertion-ordered map
type Manifest struct {
	Path string
	root *orderedmap.OrderedMap
}

// Load reads and parses a package.json file.
//
// It performs the following operations:
//   - Step 1: Reads the file from disk
//   - Step 2: Unmarshals into an ordered map to preserve field order
//   - Step 3: Verifies the required "dependencies" field exists
//
// A missing devDependencies field is tolerated and treated as an empty group;
// a missing dependencies field is a fatal manifest error, since there is
// nothing meaningful to reconcile without it.
//
// Parameters:
//   - path: Path to the package.json file
//
// Returns:
//   - *Manifest: The parsed manifest
//   - error: Read, parse, or structural error; nil on success
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	root := orderedmap.New()
	if err := json.Unmarshal(content, root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	m := &Manifest{Path: path, root: root}
	if _, ok := root.Get(DependenciesField); !ok {
		return nil, fmt.Errorf("%s has no %q field", path, DependenciesField)
	}
	if _, err := m.Group(DependenciesField); err != nil {
		return nil, err
	}
	if _, err := m.Group(DevDependenciesField); err != nil {
		return nil, err
	}

	return m, nil
}

// Group extracts a dependency mapping (name -> constraint string) by field name.
//
// It performs the following operations:
//   - Step 1: Looks up the field in the document root
//   - Step 2: Converts the raw JSON object into a string-valued ordered map
//   - Step 3: Rejects non-object fields and non-string constraint values
//
// The returned map is a copy in the sense that replacing values in it does
// not affect the document until SetGroup is called, but it preserves the
// document's key order. A missing field yields an empty map.
//
// Parameters:
//   - field: The top-level field name (DependenciesField or DevDependenciesField)
//
// Returns:
//   - *orderedmap.OrderedMap: Ordered mapping of package name to constraint
//   - error: When the field is not an object of strings; nil on success
func (m *Manifest) Group(field string) (*orderedmap.OrderedMap, error) {
	group := orderedmap.New()

	raw, ok := m.root.Get(field)
	if !ok {
		return group, nil
	}

	var deps orderedmap.OrderedMap
	switch v := raw.(type) {
	case orderedmap.OrderedMap:
		deps = v
	case *orderedmap.OrderedMap:
		deps = *v
	default:
		return nil, fmt.Errorf("%s: %q is not an object", m.Path, field)
	}

	for _, name := range deps.Keys() {
		val, _ := deps.Get(name)
		constraint, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%s: %s.%s is not a string", m.Path, field, name)
		}
		group.Set(name, constraint)
	}

	return group, nil
}

// SetGroup replaces a dependency mapping field in the document.
//
// Only the named field is touched; every other part of the document keeps
// its original content and order. Setting a field that was absent from the
// original document is refused silently, matching the rule that write-back
// never introduces structure the manifest did not have.
//
// Parameters:
//   - field: The top-level field name to replace
//   - group: The new ordered name -> constraint mapping
func (m *Manifest) SetGroup(field string, group *orderedmap.OrderedMap) {
	if _, ok := m.root.Get(field); !ok {
		return
	}
	m.root.Set(field, group)
}

// Marshal serializes the document back to JSON bytes.
//
// It performs the following operations:
//   - Step 1: Disables HTML escaping on the document and all nested maps
//   - Step 2: Encodes with two-space indentation
//   - Step 3: Trims the encoder's trailing newline
//
// Returns:
//   - []byte: The serialized document
//   - error: Encoding error; nil on success
func (m *Manifest) Marshal() ([]byte, error) {
	disableEscaping(m.root)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m.root); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save serializes the document and writes it back to its original path.
//
// Returns:
//   - error: Serialization or filesystem error; nil on success
func (m *Manifest) Save() error {
	content, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.WriteFile(m.Path, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// disableEscaping recursively disables HTML escaping on ordered maps.
//
// Without this the encoder would rewrite characters like '<' and '&' in
// package names or URLs, breaking byte-for-byte preservation.
//
// Parameters:
//   - m: The ordered map to process in place
func disableEscaping(m *orderedmap.OrderedMap) {
	m.SetEscapeHTML(false)
	for _, key := range m.Keys() {
		val, _ := m.Get(key)
		m.Set(key, normalizeEscaping(val))
	}
}

// normalizeEscaping disables HTML escaping for a value of any nested shape.
//
// Parameters:
//   - val: The value to normalize
//
// Returns:
//   - interface{}: The value with escaping disabled on all nested ordered maps
func normalizeEscaping(val interface{}) interface{} {
	switch v := val.(type) {
	case *orderedmap.OrderedMap:
		disableEscaping(v)
		return v
	case orderedmap.OrderedMap:
		copied := v
		disableEscaping(&copied)
		return &copied
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeEscaping(item)
		}
		return v
	default:
		return val
	}
}
