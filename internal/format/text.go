package format

import (
	"fmt"
	"io"

	"github.com/observatory-platform/repodeps/internal/pkgdep"
)

// renderText prints one block per package: a header line with the package
// metadata, then indented dependency and provider lines. Internal providers
// are flagged.
func renderText(w io.Writer, d *pkgdep.PkgDep, all bool) error {
	for _, pkg := range d.Packages() {
		info, err := d.Info(pkg)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Package %s [%s] [%s] [%s] [%s] [%s]\n",
			pkg, info.Version, info.Release, info.Arch, info.Repository, info.Summary); err != nil {
			return err
		}

		deps, err := d.EffectiveDependencies(pkg, all)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			if _, err := fmt.Fprintf(w, "  %s\n", dep); err != nil {
				return err
			}
			providers, err := d.Providers(pkg, dep)
			if err != nil {
				return err
			}
			for _, p := range providers {
				flag := ""
				if d.InternalPackage(p.Name) {
					flag = " internal"
				}
				if _, err := fmt.Fprintf(w, "    [%s, %s]%s\n", p.Name, p.Version, flag); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
