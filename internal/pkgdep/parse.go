package pkgdep

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Keywords of the package information file.
const (
	keyName       = "Name"
	keyArch       = "Arch"
	keyVersion    = "Version"
	keyRelease    = "Release"
	keyRepository = "Repo"
	keySummary    = "Summary"
)

// Keywords of the package dependency file.
const (
	keyPackage    = "package:"
	keyDependency = "dependency:"
	keyProvider   = "provider:"
)

// splitInfoLine extracts the keyword and value from an info line.
// Returns ok=false for lines that carry none of the expected keywords.
func splitInfoLine(line string) (key, value string, ok bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key = strings.TrimSpace(parts[0])
	switch key {
	case keyName, keyArch, keyVersion, keyRelease, keyRepository, keySummary:
		return key, strings.TrimSpace(parts[1]), true
	}
	return "", "", false
}

// ParseInfo reads an info file produced by running the "info" query over a
// package list. Fields of one package are scattered over several lines; the
// package name always comes first. Fields the file never sets stay
// "undefined".
func ParseInfo(r io.Reader, d *PkgDep) error {
	name := ""
	info := PackageInfo{}

	flush := func() {
		if name == "" {
			return
		}
		d.AddPackage(name+"."+info.Arch, info)
	}
	reset := func() {
		info = PackageInfo{
			Arch:       Undefined,
			Version:    Undefined,
			Release:    Undefined,
			Repository: Undefined,
			Summary:    Undefined,
		}
	}
	reset()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := splitInfoLine(scanner.Text())
		if !ok {
			continue
		}
		switch key {
		case keyName:
			flush()
			name = value
			reset()
		case keyArch:
			info.Arch = value
		case keyVersion:
			info.Version = value
		case keyRelease:
			info.Release = value
		case keyRepository:
			info.Repository = value
		case keySummary:
			info.Summary = value
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading info file: %w", err)
	}

	// Flush the last package.
	flush()
	return nil
}

// ParseDep reads a dependency file produced by running the "deplist" query
// over a package list. It expects package lines first, each followed by its
// dependency lines, each of those followed by provider lines.
func ParseDep(r io.Reader, d *PkgDep) error {
	pkg := ""
	dep := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case keyPackage:
			if len(fields) < 2 {
				return fmt.Errorf("malformed package line: %q", scanner.Text())
			}
			pkg = fields[1]
		case keyDependency:
			if len(fields) < 2 {
				return fmt.Errorf("malformed dependency line: %q", scanner.Text())
			}
			dep = fields[1]
			d.AddDependency(pkg, dep)
		case keyProvider:
			if len(fields) < 3 {
				return fmt.Errorf("malformed provider line: %q", scanner.Text())
			}
			if err := d.AddProvider(pkg, dep, Provider{Name: fields[1], Version: fields[2]}); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading dependency file: %w", err)
	}
	return nil
}

// ParseFiles loads the info and dependency files for the given file root
// (root.info and root.dep) into a fresh model.
func ParseFiles(root string) (*PkgDep, error) {
	d := New()

	infoFile, err := os.Open(root + ".info")
	if err != nil {
		return nil, fmt.Errorf("opening info file: %w", err)
	}
	defer infoFile.Close()
	if err := ParseInfo(infoFile, d); err != nil {
		return nil, err
	}

	depFile, err := os.Open(root + ".dep")
	if err != nil {
		return nil, fmt.Errorf("opening dependency file: %w", err)
	}
	defer depFile.Close()
	if err := ParseDep(depFile, d); err != nil {
		return nil, err
	}

	return d, nil
}
