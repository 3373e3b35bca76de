package format

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/observatory-platform/repodeps/internal/pkgdep"
)

// renderCSV prints one record per dependency with the package columns
// repeated, followed by provider name/version pairs. Each provider pair is
// trailed by a "(*)" cell when the provider is internal.
func renderCSV(w io.Writer, d *pkgdep.PkgDep, all bool) error {
	cw := csv.NewWriter(w)

	header := []string{"Package name", "Version", "Release", "Architecture",
		"Repository", "Summary", "Dependency", "Providers... (*) internal provider"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, pkg := range d.Packages() {
		info, err := d.Info(pkg)
		if err != nil {
			return err
		}
		pkgCols := []string{pkg, info.Version, info.Release, info.Arch,
			info.Repository, strings.ReplaceAll(info.Summary, ",", " ")}

		deps, err := d.EffectiveDependencies(pkg, all)
		if err != nil {
			return err
		}
		if len(deps) == 0 {
			if err := cw.Write(append(pkgCols, "---")); err != nil {
				return err
			}
			continue
		}

		for _, dep := range deps {
			record := append(append([]string{}, pkgCols...), dep)
			providers, err := d.Providers(pkg, dep)
			if err != nil {
				return err
			}
			for _, p := range providers {
				flag := ""
				if d.InternalPackage(p.Name) {
					flag = "(*)"
				}
				record = append(record, p.Name, p.Version, flag)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
