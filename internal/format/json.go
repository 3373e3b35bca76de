package format

import (
	"encoding/json"
	"io"

	"github.com/observatory-platform/repodeps/internal/pkgdep"
)

type jsonProvider struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Internal bool   `json:"internal"`
}

type jsonDependency struct {
	Name      string         `json:"name"`
	Internal  bool           `json:"internal"`
	Providers []jsonProvider `json:"providers"`
}

type jsonPackage struct {
	Name         string           `json:"name"`
	Version      string           `json:"version"`
	Release      string           `json:"release"`
	Arch         string           `json:"arch"`
	Repository   string           `json:"repository"`
	Summary      string           `json:"summary"`
	Dependencies []jsonDependency `json:"dependencies"`
}

type jsonReport struct {
	Packages []jsonPackage `json:"packages"`
}

func renderJSON(w io.Writer, d *pkgdep.PkgDep, all bool, pretty bool) error {
	report := jsonReport{Packages: []jsonPackage{}}

	for _, pkg := range d.Packages() {
		info, err := d.Info(pkg)
		if err != nil {
			return err
		}
		jp := jsonPackage{
			Name:         pkg,
			Version:      info.Version,
			Release:      info.Release,
			Arch:         info.Arch,
			Repository:   info.Repository,
			Summary:      info.Summary,
			Dependencies: []jsonDependency{},
		}

		deps, err := d.EffectiveDependencies(pkg, all)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			internal, err := d.InternalDependency(pkg, dep)
			if err != nil {
				return err
			}
			jd := jsonDependency{Name: dep, Internal: internal, Providers: []jsonProvider{}}

			providers, err := d.Providers(pkg, dep)
			if err != nil {
				return err
			}
			for _, p := range providers {
				jd.Providers = append(jd.Providers, jsonProvider{
					Name:     p.Name,
					Version:  p.Version,
					Internal: d.InternalPackage(p.Name),
				})
			}
			jp.Dependencies = append(jp.Dependencies, jd)
		}
		report.Packages = append(report.Packages, jp)
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
