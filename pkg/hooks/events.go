// pkg/hooks/events.go
package hooks

import "github.com/arc-language/focusmod/pkg/core"

// EventName identifies a package manager lifecycle event
type EventName string

const (
	// PostPackageInstall fires after a package was installed
	PostPackageInstall EventName = "post-package-install"
	// PostPackageUpdate fires after a package was updated
	PostPackageUpdate EventName = "post-package-update"
	// PostPackageUninstall fires after a package was removed
	PostPackageUninstall EventName = "post-package-uninstall"
	// PostUpdateCmd fires once after a full install or update run
	PostUpdateCmd EventName = "post-update-cmd"
)

// SubscribedEvents lists the events focusmod handles, in dispatch order
func SubscribedEvents() []EventName {
	return []EventName{
		PostPackageInstall,
		PostPackageUpdate,
		PostPackageUninstall,
		PostUpdateCmd,
	}
}

// IsPackageEvent reports whether the event carries a single operation
func (e EventName) IsPackageEvent() bool {
	switch e {
	case PostPackageInstall, PostPackageUpdate, PostPackageUninstall:
		return true
	default:
		return false
	}
}

// Valid reports whether e is a subscribed event
func (e EventName) Valid() bool {
	return e.IsPackageEvent() || e == PostUpdateCmd
}

// PackageOperation is an operation exposing a single package (install, uninstall)
type PackageOperation interface {
	Package() *core.PackageDescriptor
}

// TargetOperation is an operation exposing the package it ends on (update)
type TargetOperation interface {
	TargetPackage() *core.PackageDescriptor
}

// LocalRepository lists every installed package
type LocalRepository interface {
	Packages() []*core.PackageDescriptor
}
