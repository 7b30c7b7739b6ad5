package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const installedJSON = `{"packages": [
    {"name": "acme/blog", "version": "1.0.0", "type": "focus-module"},
    {"name": "acme/shop-front", "version": "2.1.0", "type": "focus-module", "extra": {"module": {"name": "Storefront"}}},
    {"name": "psr/log", "version": "3.0.0", "type": "library"}
]}`

// artisan echoes its arguments and fails for the module named Broken
const artisanScript = `echo "artisan $1 $2"
if [ "$2" = "Broken" ]; then
  echo "module $2 not found" >&2
  exit 1
fi
`

func setupProject(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	dir := t.TempDir()
	files := map[string]string{
		"artisan":                        artisanScript,
		"vendor/autoload.php":            "<?php\n",
		"vendor/composer/installed.json": installedJSON,
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	}

	t.Setenv("FOCUSMOD_INTERPRETER", "/bin/sh")
	t.Setenv("FOCUSMOD_TIMEOUT", "")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSweepCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "sweep", "--workdir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Executing: /bin/sh artisan module:setup Blog")
	assert.Contains(t, stdout, "artisan module:setup Blog")
	assert.Contains(t, stdout, "artisan module:setup Storefront")
	assert.Contains(t, stdout, "2 module(s) processed, 0 failed")
}

func TestHookCommand_InstallFromStdin(t *testing.T) {
	dir := setupProject(t)
	doc := `{"job":"install","package":{"name":"acme/new-thing","type":"focus-module"}}`

	stdout, _, err := run(t, doc, "hook", "post-package-install", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "artisan module:setup NewThing")
}

func TestHookCommand_UninstallIgnoresFailure(t *testing.T) {
	dir := setupProject(t)
	doc := `{"job":"uninstall","package":{"name":"acme/broken","type":"focus-module"}}`

	stdout, stderr, err := run(t, doc, "hook", "post-package-uninstall", "--workdir", dir, "--strict")
	require.NoError(t, err)
	assert.Contains(t, stdout, "module Broken not found")
	assert.NotContains(t, stderr, "Module installer error")
}

func TestHookCommand_StrictFailure(t *testing.T) {
	dir := setupProject(t)
	doc := `{"job":"update","initial":{"name":"acme/broken","type":"focus-module"},"target":{"name":"acme/broken","type":"focus-module"}}`

	_, stderr, err := run(t, doc, "hook", "post-package-update", "--workdir", dir)
	require.NoError(t, err, "best effort without --strict")
	assert.Contains(t, stderr, "Module installer error")

	_, _, err = run(t, doc, "hook", "post-package-update", "--workdir", dir, "--strict")
	assert.Error(t, err)
}

func TestHookCommand_ByPackageName(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "hook", "post-package-install", "--package", "acme/shop-front", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "artisan module:setup Storefront")
}

func TestHookCommand_UninstallPackageGoneFromMetadata(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "hook", "post-package-uninstall", "--package", "acme/already-removed", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "artisan module:remove AlreadyRemoved")

	_, _, err = run(t, "", "hook", "post-package-uninstall", "--package", "acme/broken", "--workdir", dir, "--strict")
	assert.NoError(t, err, "uninstall failures never fail the run")
}

func TestHookCommand_UpdateByPackageName(t *testing.T) {
	dir := setupProject(t)
	installed := `{"packages": [{"name": "acme/broken", "type": "focus-module"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor/composer/installed.json"), []byte(installed), 0644))

	stdout, _, err := run(t, "", "hook", "post-package-update", "--package", "acme/broken", "--workdir", dir, "--strict")
	assert.ErrorContains(t, err, "post-package-update: 1 module command(s) failed")
	assert.Contains(t, stdout, "artisan module:setup Broken")
}

func TestHookCommand_PostUpdateCmd(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "hook", "post-update-cmd", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "artisan module:setup Blog")
	assert.Contains(t, stdout, "artisan module:setup Storefront")
}

func TestHookCommand_UnknownEvent(t *testing.T) {
	dir := setupProject(t)

	_, _, err := run(t, "", "hook", "pre-autoload-dump", "--workdir", dir)
	assert.ErrorContains(t, err, "unsupported event")
}

func TestSetupAndRemoveCommands(t *testing.T) {
	dir := setupProject(t)

	stdout, stderr, err := run(t, "", "setup", "acme/blog", "psr/log", "acme/missing", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "artisan module:setup Blog")
	assert.Contains(t, stderr, "psr/log is not a module package")
	assert.Contains(t, stderr, "acme/missing")

	_, _, err = run(t, "", "setup", "acme/missing", "--workdir", dir, "--strict")
	assert.Error(t, err)

	stdout, _, err = run(t, "", "remove", "--module", "Broken", "acme/blog", "--workdir", dir, "--strict")
	require.NoError(t, err)
	assert.Contains(t, stdout, "artisan module:remove Broken")
	assert.Contains(t, stdout, "artisan module:remove Blog")

	_, _, err = run(t, "", "remove", "--workdir", dir)
	assert.Error(t, err)
}

func TestListAndInfoCommands(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "list", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "acme/shop-front")
	assert.Contains(t, stdout, "Storefront")
	assert.Contains(t, stdout, filepath.Join("Modules", "Blog"))
	assert.NotContains(t, stdout, "psr/log")

	stdout, _, err = run(t, "", "info", "acme/blog", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Module: Blog")
	assert.Contains(t, stdout, "Handled: true")

	_, _, err = run(t, "", "info", "acme/none", "--workdir", dir)
	assert.Error(t, err)
}

func TestDoctorCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "doctor", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Ready")
	assert.Contains(t, stdout, filepath.Join(dir, "vendor", "composer", "installed.json")+" (3 packages, 2 modules)")

	empty := t.TempDir()
	stdout, _, err = run(t, "", "doctor", "--workdir", empty)
	require.NoError(t, err)
	assert.Contains(t, stdout, "entry point missing")

	_, _, err = run(t, "", "doctor", "--workdir", empty, "--strict")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := setupProject(t)

	stdout, _, err := run(t, "", "init", "--workdir", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, "focusmod.yaml")
	assert.Contains(t, stdout, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "interpreter: /bin/sh")

	_, _, err = run(t, "", "init", "--workdir", dir)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "", "init", "--format", "toml", "--workdir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "focusmod.toml"))

	_, _, err = run(t, "", "init", "--format", "json", "--workdir", dir)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "", "version", "--workdir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "focusmod version "+Version)
}
