package collector

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// ListRow is one entry of the "list available" output: the package name
// (name.arch), its version-release and the repository that provides it.
type ListRow struct {
	Name    string
	Version string
	Repo    string
}

// ParseList parses "list available" output into rows. The tool wraps long
// package names onto their own line with version and repository following
// on an indented continuation line; those are rejoined here.
func ParseList(output string) []ListRow {
	var rows []ListRow
	pending := ""

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			pending = ""
			continue
		}
		// Section headers and plugin noise have no repository column.
		if !strings.HasPrefix(line, " ") && strings.Contains(line, " Packages") {
			pending = ""
			continue
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 3 && versionShaped(fields[1]):
			rows = append(rows, ListRow{Name: fields[0], Version: fields[1], Repo: fields[2]})
			pending = ""
		case len(fields) == 1 && strings.Contains(fields[0], "."):
			// Wrapped line: the name.arch alone, continuation follows.
			pending = fields[0]
		case len(fields) == 2 && pending != "" && versionShaped(fields[0]):
			rows = append(rows, ListRow{Name: pending, Version: fields[0], Repo: fields[1]})
			pending = ""
		default:
			// Plugin chatter and mirror status lines never carry a
			// version column; dropping them keeps the list to real rows.
			pending = ""
		}
	}
	return rows
}

// versionShaped reports whether a field can be an rpm version-release.
// Versions always start with a digit (an epoch like "1:2.5-1" included),
// which tells them apart from plugin and mirror chatter.
func versionShaped(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// CompileFilters compiles repository name patterns into regular expressions.
func CompileFilters(patterns []string) ([]*regexp.Regexp, error) {
	filters := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid repository pattern %q: %w", p, err)
		}
		filters = append(filters, re)
	}
	return filters, nil
}

// FilterRows keeps the rows whose repository matches at least one filter,
// preserving listing order.
func FilterRows(rows []ListRow, filters []*regexp.Regexp) []ListRow {
	var out []ListRow
	for _, row := range rows {
		for _, re := range filters {
			if re.MatchString(row.Repo) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
