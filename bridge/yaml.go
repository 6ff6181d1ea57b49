package bridge

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Neumenon/etfer/etf"
)

// ToYAML renders v as a YAML document. Mapping keys come out sorted.
func ToYAML(v *etf.Value) ([]byte, error) {
	data, err := yaml.Marshal(etf.ToAny(v))
	if err != nil {
		return nil, fmt.Errorf("bridge: encode YAML: %w", err)
	}
	return data, nil
}

// FromYAML parses a single YAML document.
func FromYAML(data []byte) (*etf.Value, error) {
	var x any
	if err := yaml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("bridge: decode YAML: %w", err)
	}
	v, err := fromAny(x)
	if err != nil {
		return nil, fmt.Errorf("bridge: decode YAML: %w", err)
	}
	return v, nil
}
