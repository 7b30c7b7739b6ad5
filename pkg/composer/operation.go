// pkg/composer/operation.go
package composer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arc-language/focusmod/pkg/core"
)

// Job names as Composer reports them
const (
	JobInstall   = "install"
	JobUpdate    = "update"
	JobUninstall = "uninstall"
)

// ErrInvalidOperation indicates a malformed operation document
var ErrInvalidOperation = errors.New("invalid operation")

// Operation is a package operation delivered with a package event.
// Install and uninstall carry Package; update carries Initial and Target.
type Operation struct {
	Job     string
	Pkg     *core.PackageDescriptor
	Initial *core.PackageDescriptor
	Target  *core.PackageDescriptor
}

// Package returns the package of an install or uninstall operation
func (o *Operation) Package() *core.PackageDescriptor {
	return o.Pkg
}

// InitialPackage returns the package an update started from
func (o *Operation) InitialPackage() *core.PackageDescriptor {
	return o.Initial
}

// TargetPackage returns the package an update ends on
func (o *Operation) TargetPackage() *core.PackageDescriptor {
	return o.Target
}

// String returns a short description
func (o *Operation) String() string {
	switch {
	case o.Target != nil:
		return fmt.Sprintf("%s %s", o.Job, o.Target.PrettyName)
	case o.Pkg != nil:
		return fmt.Sprintf("%s %s", o.Job, o.Pkg.PrettyName)
	default:
		return o.Job
	}
}

type operationDocument struct {
	Job     string      `json:"job"`
	Package *rawPackage `json:"package"`
	Initial *rawPackage `json:"initial"`
	Target  *rawPackage `json:"target"`
}

// DecodeOperation reads one JSON operation document:
//
//	{"job": "update", "initial": {...}, "target": {...}}
func DecodeOperation(r io.Reader) (*Operation, error) {
	var doc operationDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	op := &Operation{Job: strings.ToLower(strings.TrimSpace(doc.Job))}
	if doc.Package != nil {
		op.Pkg = doc.Package.descriptor()
	}
	if doc.Initial != nil {
		op.Initial = doc.Initial.descriptor()
	}
	if doc.Target != nil {
		op.Target = doc.Target.descriptor()
	}

	switch op.Job {
	case JobInstall, JobUninstall:
		if op.Pkg == nil {
			return nil, fmt.Errorf("%w: %s without package", ErrInvalidOperation, op.Job)
		}
	case JobUpdate:
		if op.Target == nil && op.Pkg == nil {
			return nil, fmt.Errorf("%w: update without target", ErrInvalidOperation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown job %q", ErrInvalidOperation, doc.Job)
	}

	return op, nil
}
