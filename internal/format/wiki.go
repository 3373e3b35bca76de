package format

import (
	"fmt"
	"io"

	"github.com/observatory-platform/repodeps/internal/pkgdep"
)

// renderWiki prints a MediaWiki table. Package cells span all of the
// package's provider rows, dependency cells span their provider rows, and
// internal providers link back to the package's own anchor.
func renderWiki(w io.Writer, d *pkgdep.PkgDep, all bool) error {
	if _, err := fmt.Fprintln(w, `{| class="wikitable"`); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "! # || Package || Version|| Repository || Dependency || Provider || Version || Repository"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|-"); err != nil {
		return err
	}

	// Row spans must be known before a package's first cell is printed.
	rowSpan := make(map[string]int)
	for _, pkg := range d.Packages() {
		deps, err := d.EffectiveDependencies(pkg, all)
		if err != nil {
			return err
		}
		span := 0
		for _, dep := range deps {
			n, err := d.ProviderCount(pkg, dep)
			if err != nil {
				return err
			}
			span += n
		}
		if span < 1 {
			span = 1
		}
		rowSpan[pkg] = span
	}

	count := 1
	for _, pkg := range d.Packages() {
		info, err := d.Info(pkg)
		if err != nil {
			return err
		}

		span := rowSpan[pkg]
		fmt.Fprintf(w, "| rowspan=\"%d\" | %d\n", span, count)
		fmt.Fprintf(w, "| rowspan=\"%d\" | <span id=\"%s\">%s</span>\n", span, pkg, pkg)
		fmt.Fprintf(w, "| rowspan=\"%d\" | %s\n", span, info.Version)
		fmt.Fprintf(w, "| rowspan=\"%d\" | %s\n", span, info.Repository)
		count++

		deps, err := d.EffectiveDependencies(pkg, all)
		if err != nil {
			return err
		}
		if len(deps) == 0 {
			for i := 0; i < 4; i++ {
				fmt.Fprintln(w, "| ---")
			}
			fmt.Fprintln(w, "|-")
			continue
		}

		for _, dep := range deps {
			n, err := d.ProviderCount(pkg, dep)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "| rowspan=\"%d\" | %s\n", n, dep)

			providers, err := d.Providers(pkg, dep)
			if err != nil {
				return err
			}
			for _, p := range providers {
				repository := ""
				if pInfo, err := d.Info(p.Name); err == nil {
					repository = pInfo.Repository
				}
				name := p.Name
				if d.InternalPackage(p.Name) {
					name = "[[#" + p.Name + "|" + p.Name + "]]"
				}
				fmt.Fprintf(w, "| %s\n", name)
				fmt.Fprintf(w, "| %s\n", p.Version)
				fmt.Fprintf(w, "| %s\n", repository)
				fmt.Fprintln(w, "|-")
			}
		}
	}

	_, err := fmt.Fprintln(w, "|}")
	return err
}
