package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/observatory-platform/repodeps/internal/config"
)

const testInfo = `Name : cfitsio
Arch : x86_64
Version : 3.370
Release : 1.el7
Repo : gemini-production/7/x86_64
Summary : FITS file library

Name : VDCT
Arch : i686
Version : 2.5
Release : 1.el7
Repo : gemini-production/7/x86_64
Summary : Visual Database Configuration Tool
`

const testDep = `package: VDCT.i686 2.5-1.el7
  dependency: cfitsio
   provider: cfitsio.x86_64 3.370-1.el7
  dependency: libc.so.6
   provider: glibc.x86_64 2.17-292.el7
package: cfitsio.x86_64 3.370-1.el7
`

func setupMetadataDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pkg.info"), []byte(testInfo), 0644); err != nil {
		t.Fatalf("writing info file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pkg.dep"), []byte(testDep), 0644); err != nil {
		t.Fatalf("writing dep file: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	prevConfig := config.GlConfig
	t.Cleanup(func() {
		os.Chdir(cwd)
		config.GlConfig = prevConfig
	})
}

func runFormat(t *testing.T, args ...string) string {
	t.Helper()
	root := createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"format"}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("format command failed: %v\n%s", err, out.String())
	}
	return out.String()
}

func TestFormatTextOutput(t *testing.T) {
	setupMetadataDir(t)
	out := runFormat(t, "-o", "text")

	if !strings.Contains(out, "Package VDCT.i686 [2.5] [1.el7] [i686]") {
		t.Errorf("missing package header:\n%s", out)
	}
	if !strings.Contains(out, "  cfitsio\n") {
		t.Errorf("missing internal dependency:\n%s", out)
	}
	// External dependency excluded without --all.
	if strings.Contains(out, "libc.so.6") {
		t.Errorf("external dependency leaked:\n%s", out)
	}
}

func TestFormatAllIncludesExternal(t *testing.T) {
	setupMetadataDir(t)
	out := runFormat(t, "-o", "text", "--all")
	if !strings.Contains(out, "libc.so.6") {
		t.Errorf("expected external dependency with --all:\n%s", out)
	}
}

func TestFormatCSVOutput(t *testing.T) {
	setupMetadataDir(t)
	out := runFormat(t, "-o", "csv")
	if !strings.HasPrefix(out, "Package name,Version,Release,Architecture,Repository,Summary,Dependency") {
		t.Errorf("missing CSV header:\n%s", out)
	}
}

func TestFormatWikiOutput(t *testing.T) {
	setupMetadataDir(t)
	out := runFormat(t, "-o", "wiki")
	if !strings.Contains(out, `{| class="wikitable"`) {
		t.Errorf("missing wiki table:\n%s", out)
	}
	if !strings.Contains(out, "[[#cfitsio.x86_64|cfitsio.x86_64]]") {
		t.Errorf("missing internal provider link:\n%s", out)
	}
}

func TestFormatRejectsUnknownFormat(t *testing.T) {
	setupMetadataDir(t)
	root := createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"format", "-o", "xml"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatMissingFilesFails(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	root := createRootCommand()
	root.SetArgs([]string{"format"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when metadata files are missing")
	}
}
