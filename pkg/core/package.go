// pkg/core/package.go
package core

import "strings"

// DefaultPackageType is the Composer package type handled by focusmod
const DefaultPackageType = "focus-module"

// PackageDescriptor is the read-only view of a Composer package
type PackageDescriptor struct {
	PrettyName string         `json:"name"`              // vendor/name or name
	Type       string         `json:"type"`              // Composer type tag
	Version    string         `json:"version,omitempty"` // Installed version, informational
	Extra      map[string]any `json:"extra,omitempty"`   // Arbitrary extra metadata
}

// Name returns the normalized (lower-case) package name
func (p *PackageDescriptor) Name() string {
	return strings.ToLower(p.PrettyName)
}

// IsType reports whether the package carries the given type tag
func (p *PackageDescriptor) IsType(packageType string) bool {
	return p != nil && p.Type == packageType
}

// ModuleName is the PascalCase identifier of a host application module
type ModuleName string

// String returns the module name as a plain string
func (m ModuleName) String() string {
	return string(m)
}

// IsEmpty reports whether no usable name was derived
func (m ModuleName) IsEmpty() bool {
	return strings.TrimSpace(string(m)) == ""
}

// Action is a module lifecycle action understood by the host CLI
type Action int

const (
	// ActionSetup sets up (installs or refreshes) a module
	ActionSetup Action = iota
	// ActionRemove tears a module down
	ActionRemove
)

// String returns the action keyword
func (a Action) String() string {
	switch a {
	case ActionSetup:
		return "setup"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Result is the outcome of a command execution attempt
type Result int

const (
	// Success means the command ran (or was deliberately skipped)
	Success Result = iota
	// SoftFailure means the command failed and the caller chose to ignore it
	SoftFailure
	// HardFailure means the command failed and the failure was reported
	HardFailure
)

// String returns a readable result label
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case SoftFailure:
		return "soft-failure"
	case HardFailure:
		return "hard-failure"
	default:
		return "unknown"
	}
}

// OK reports whether the result is Success
func (r Result) OK() bool {
	return r == Success
}
