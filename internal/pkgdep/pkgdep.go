// Package pkgdep holds the package/dependency/provider model parsed from
// collected metadata files.
//
// Packages and providers are keyed by name.arch (e.g. "cfitsio.x86_64") so
// the same key works across the info and dependency files. Packages present
// in the model are "internal"; a dependency is internal when at least one of
// its providers is an internal package.
package pkgdep

import (
	"fmt"
	"sort"

	"github.com/observatory-platform/repodeps/internal/utils/logger"
)

// Undefined marks metadata fields the info file never set.
const Undefined = "undefined"

// Provider is one package providing a dependency.
type Provider struct {
	Name    string
	Version string
}

// PackageInfo is the per-package metadata from the info file.
type PackageInfo struct {
	Arch       string
	Version    string
	Release    string
	Repository string
	Summary    string
}

// PkgDep stores packages and their dependency/provider relations.
type PkgDep struct {
	pkgs map[string]PackageInfo
	deps map[string]map[string][]Provider
}

func New() *PkgDep {
	return &PkgDep{
		pkgs: make(map[string]PackageInfo),
		deps: make(map[string]map[string][]Provider),
	}
}

// AddPackage records package metadata under the name.arch key and
// initializes its dependency table. A duplicate is ignored with a warning.
func (d *PkgDep) AddPackage(key string, info PackageInfo) {
	log := logger.Logger()
	if _, exists := d.pkgs[key]; exists {
		log.Warnf("package %s already exists, ignored", key)
		return
	}
	d.pkgs[key] = info
	if _, exists := d.deps[key]; !exists {
		d.deps[key] = make(map[string][]Provider)
	}
}

// AddDependency records a dependency for a package. The package does not
// have to exist yet; the dependency file may mention packages the info file
// never described.
func (d *PkgDep) AddDependency(pkg, dep string) {
	log := logger.Logger()
	table, ok := d.deps[pkg]
	if !ok {
		table = make(map[string][]Provider)
		d.deps[pkg] = table
	}
	if _, exists := table[dep]; exists {
		log.Warnf("dependency %s already exists for package %s", dep, pkg)
		return
	}
	table[dep] = nil
}

// AddProvider appends a provider for a known package and dependency.
func (d *PkgDep) AddProvider(pkg, dep string, p Provider) error {
	table, ok := d.deps[pkg]
	if !ok {
		return fmt.Errorf("package %s does not exist", pkg)
	}
	providers, ok := table[dep]
	if !ok {
		return fmt.Errorf("dependency %s for package %s does not exist", dep, pkg)
	}
	table[dep] = append(providers, p)
	return nil
}

// Packages returns the sorted package keys.
func (d *PkgDep) Packages() []string {
	keys := make([]string, 0, len(d.pkgs))
	for key := range d.pkgs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Info returns the metadata for a package.
func (d *PkgDep) Info(pkg string) (PackageInfo, error) {
	info, ok := d.pkgs[pkg]
	if !ok {
		return PackageInfo{}, fmt.Errorf("package %s does not exist", pkg)
	}
	return info, nil
}

// DependencyList returns the sorted dependency names of a package.
// The list is empty when the package has no dependencies.
func (d *PkgDep) DependencyList(pkg string) ([]string, error) {
	table, ok := d.deps[pkg]
	if !ok {
		return nil, fmt.Errorf("package %s does not exist", pkg)
	}
	deps := make([]string, 0, len(table))
	for dep := range table {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps, nil
}

// Providers returns the providers of a dependency in insertion order.
func (d *PkgDep) Providers(pkg, dep string) ([]Provider, error) {
	table, ok := d.deps[pkg]
	if !ok {
		return nil, fmt.Errorf("package %s does not exist", pkg)
	}
	providers, ok := table[dep]
	if !ok {
		return nil, fmt.Errorf("dependency %s for package %s does not exist", dep, pkg)
	}
	return providers, nil
}

// InternalPackage reports whether a package is part of the model.
func (d *PkgDep) InternalPackage(pkg string) bool {
	_, ok := d.pkgs[pkg]
	return ok
}

// InternalDependency reports whether at least one provider of the
// dependency is an internal package.
func (d *PkgDep) InternalDependency(pkg, dep string) (bool, error) {
	providers, err := d.Providers(pkg, dep)
	if err != nil {
		return false, err
	}
	for _, p := range providers {
		if d.InternalPackage(p.Name) {
			return true, nil
		}
	}
	return false, nil
}

// EffectiveDependencies returns the sorted dependency list, restricted to
// internal dependencies unless all is set.
func (d *PkgDep) EffectiveDependencies(pkg string, all bool) ([]string, error) {
	deps, err := d.DependencyList(pkg)
	if err != nil {
		return nil, err
	}
	if all {
		return deps, nil
	}
	var internal []string
	for _, dep := range deps {
		ok, err := d.InternalDependency(pkg, dep)
		if err != nil {
			return nil, err
		}
		if ok {
			internal = append(internal, dep)
		}
	}
	return internal, nil
}

// PackageCount returns the number of packages in the model.
func (d *PkgDep) PackageCount() int {
	return len(d.pkgs)
}

// ProviderCount returns the number of providers of a dependency.
func (d *PkgDep) ProviderCount(pkg, dep string) (int, error) {
	providers, err := d.Providers(pkg, dep)
	if err != nil {
		return 0, err
	}
	return len(providers), nil
}
