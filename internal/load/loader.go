// Package load implements the input contract: one analysis unit of
// already-parsed, semantically resolved declarations and call sites,
// decoded from what an external front-end emits. No source text is ever
// read here.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nic-ch/hierlint/internal/model"
)

// ReadUnit loads an analysis unit from disk. Callers that already hold
// the raw bytes (to fingerprint them, say) use Decode directly.
func ReadUnit(path string) (*model.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit: %w", err)
	}
	return Decode(path, data)
}

// Decode decodes one analysis unit, picking the format by the path's
// extension (.yaml/.yml, everything else JSON). The unit name defaults
// to the file's base name.
func Decode(path string, data []byte) (*model.Unit, error) {
	var unit *model.Unit
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unit, err = DecodeYAML(data)
	default:
		unit, err = DecodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if unit.Name == "" {
		unit.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return unit, nil
}

// DecodeJSON decodes one analysis unit from JSON
func DecodeJSON(data []byte) (*model.Unit, error) {
	var unit model.Unit
	if err := json.Unmarshal(data, &unit); err != nil {
		return nil, fmt.Errorf("unmarshal unit: %w", err)
	}
	return &unit, nil
}

// DecodeYAML decodes one analysis unit from YAML
func DecodeYAML(data []byte) (*model.Unit, error) {
	var unit model.Unit
	if err := yaml.Unmarshal(data, &unit); err != nil {
		return nil, fmt.Errorf("unmarshal unit: %w", err)
	}
	return &unit, nil
}
