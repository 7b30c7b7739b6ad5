// pkg/naming/resolver.go
package naming

import (
	"path/filepath"
	"strings"

	"github.com/arc-language/focusmod/pkg/core"
)

// Resolver implements core.Resolver. It holds no state.
type Resolver struct{}

// ResolveModuleName implements core.Resolver
func (Resolver) ResolveModuleName(pkg *core.PackageDescriptor) core.ModuleName {
	return ResolveModuleName(pkg)
}

// ResolveModuleName derives the module name for a package.
//
// Priority:
//  1. extra.module.name when it is a non-empty string
//  2. the pretty name without its vendor prefix, converted to PascalCase
func ResolveModuleName(pkg *core.PackageDescriptor) core.ModuleName {
	if pkg == nil {
		return ""
	}

	if name, ok := explicitName(pkg.Extra); ok {
		return core.ModuleName(name)
	}

	packageName := pkg.PrettyName
	if i := strings.LastIndex(packageName, "/"); i >= 0 {
		packageName = packageName[i+1:]
	}

	return core.ModuleName(pascalCase(packageName))
}

// InstallPath returns the directory a module package is installed into
func InstallPath(modulesDir string, pkg *core.PackageDescriptor) string {
	return filepath.Join(modulesDir, ResolveModuleName(pkg).String())
}

// Supports reports whether packageType is handled by focusmod
func Supports(packageType, configured string) bool {
	if configured == "" {
		configured = core.DefaultPackageType
	}
	return packageType == configured
}

func explicitName(extra map[string]any) (string, bool) {
	module, ok := extra["module"].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := module["name"].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// pascalCase turns "my-cool-thing" into "MyCoolThing". It follows PHP's
// ucwords: words split on ASCII whitespace, only a-z are upper-cased and the
// rest of each word keeps its case. Spaces are removed afterwards.
func pascalCase(s string) string {
	out := make([]byte, 0, len(s))
	wordStart := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '-', ' ':
			wordStart = true
			continue
		case '\t', '\r', '\n', '\f', '\v':
			wordStart = true
			out = append(out, c)
			continue
		}
		if wordStart && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		wordStart = false
		out = append(out, c)
	}
	return string(out)
}
