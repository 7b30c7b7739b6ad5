// pkg/composer/repository.go
package composer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/focusmod/pkg/core"
)

const (
	// InstalledFile is Composer's local repository, relative to the project root
	InstalledFile = "vendor/composer/installed.json"
	// LockFile is the project lock file
	LockFile = "composer.lock"
)

// ErrPackageNotFound indicates a package is in neither repository file
var ErrPackageNotFound = errors.New("package not found")

// Repository is an ordered, read-only list of packages
type Repository struct {
	source   string
	packages []*core.PackageDescriptor
}

// NewRepository wraps an in-memory package list
func NewRepository(source string, packages []*core.PackageDescriptor) *Repository {
	return &Repository{source: source, packages: packages}
}

// Source returns the file the repository was read from
func (r *Repository) Source() string {
	return r.source
}

// Packages returns every package in file order
func (r *Repository) Packages() []*core.PackageDescriptor {
	return r.packages
}

// OfType returns packages carrying the given type tag
func (r *Repository) OfType(packageType string) []*core.PackageDescriptor {
	var out []*core.PackageDescriptor
	for _, pkg := range r.packages {
		if pkg.IsType(packageType) {
			out = append(out, pkg)
		}
	}
	return out
}

// Find looks a package up by name, case-insensitively
func (r *Repository) Find(name string) (*core.PackageDescriptor, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, pkg := range r.packages {
		if pkg.Name() == want {
			return pkg, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
}

// LoadInstalled reads vendor/composer/installed.json under workDir.
// Both the Composer 2 object form and the Composer 1 array form are accepted.
func LoadInstalled(workDir string) (*Repository, error) {
	path := filepath.Join(workDir, InstalledFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading installed packages: %w", err)
	}

	packages, err := parseInstalled(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewRepository(path, packages), nil
}

// LoadLock reads composer.lock under workDir, including dev packages
func LoadLock(workDir string) (*Repository, error) {
	path := filepath.Join(workDir, LockFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	var lock struct {
		Packages    []rawPackage `json:"packages"`
		PackagesDev []rawPackage `json:"packages-dev"`
	}
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	packages := convert(lock.Packages)
	packages = append(packages, convert(lock.PackagesDev)...)
	return NewRepository(path, packages), nil
}

// Lookup finds name in installed.json, then in composer.lock
func Lookup(workDir, name string) (*core.PackageDescriptor, error) {
	var errs []error
	for _, load := range []func(string) (*Repository, error){LoadInstalled, LoadLock} {
		repo, err := load(workDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pkg, err := repo.Find(name)
		if err == nil {
			return pkg, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %s (%v)", ErrPackageNotFound, name, errors.Join(errs...))
}

func parseInstalled(data []byte) ([]*core.PackageDescriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var legacy []rawPackage
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, err
		}
		return convert(legacy), nil
	}

	var installed struct {
		Packages []rawPackage `json:"packages"`
	}
	if err := json.Unmarshal(trimmed, &installed); err != nil {
		return nil, err
	}
	return convert(installed.Packages), nil
}
