// pkg/composer/types.go
package composer

import (
	"bytes"
	"encoding/json"

	"github.com/arc-language/focusmod/pkg/core"
)

// rawPackage is a package entry as Composer writes it. PHP serializes an
// empty extra as [] instead of {}, so extra is decoded lazily.
type rawPackage struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Type    string          `json:"type"`
	Extra   json.RawMessage `json:"extra"`
}

func (p *rawPackage) descriptor() *core.PackageDescriptor {
	pkgType := p.Type
	if pkgType == "" {
		pkgType = "library" // Composer's default type
	}
	return &core.PackageDescriptor{
		PrettyName: p.Name,
		Type:       pkgType,
		Version:    p.Version,
		Extra:      decodeExtra(p.Extra),
	}
}

func decodeExtra(raw json.RawMessage) map[string]any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var extra map[string]any
	if err := json.Unmarshal(raw, &extra); err != nil {
		return nil
	}
	return extra
}

func convert(raw []rawPackage) []*core.PackageDescriptor {
	out := make([]*core.PackageDescriptor, 0, len(raw))
	for i := range raw {
		if raw[i].Name == "" {
			continue
		}
		out = append(out, raw[i].descriptor())
	}
	return out
}
