// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/arc-language/focusmod/pkg/core"
)

// Platform describes the project environment the host CLI runs in
type Platform struct {
	OS          string // linux, darwin, windows
	Arch        string // amd64, arm64, ...
	WorkDir     string // Project root
	Interpreter string // Resolved interpreter path, empty when not found
	EntryPoint  string // Absolute entry point path
	HasEntry    bool   // Entry point exists
	Bootstrap   string // Absolute bootstrap marker path
	Ready       bool   // Bootstrap marker exists
}

// Detect probes the interpreter, the entry point and the bootstrap marker
func Detect(cfg *core.Config) *Platform {
	p := &Platform{
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		WorkDir: cfg.WorkDir,
	}

	p.Interpreter = lookPath(cfg.Interpreter)

	p.EntryPoint = cfg.EntryPoint
	if !filepath.IsAbs(p.EntryPoint) {
		p.EntryPoint = filepath.Join(cfg.WorkDir, cfg.EntryPoint)
	}
	p.HasEntry = fileExists(p.EntryPoint)

	p.Bootstrap = filepath.Join(cfg.WorkDir, cfg.BootstrapFile)
	p.Ready = fileExists(p.Bootstrap)

	return p
}

// Problems lists everything that would stop a module command from running
func (p *Platform) Problems() []string {
	var problems []string
	if p.Interpreter == "" {
		problems = append(problems, "interpreter not found in PATH")
	}
	if !p.HasEntry {
		problems = append(problems, fmt.Sprintf("entry point missing: %s", p.EntryPoint))
	}
	if !p.Ready {
		problems = append(problems, fmt.Sprintf("bootstrap marker missing: %s (commands will be skipped)", p.Bootstrap))
	}
	return problems
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (interpreter: %s, entry point: %v, ready: %v)",
		p.OS, p.Arch, orNone(p.Interpreter), p.HasEntry, p.Ready)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
