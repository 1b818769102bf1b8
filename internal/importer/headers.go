package importer

import (
	"regexp"
	"strings"
)

var headerCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader lower-cases a column header and collapses every run of
// non-alphanumeric characters to a single space. "EAN-Code " and "ean code"
// normalize identically.
func NormalizeHeader(h string) string {
	return strings.TrimSpace(headerCleanRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), " "))
}

// BuildHeaderMap resolves canonical field names to the actual header
// spelling present in one file. The canonical name is tried first, then
// each alias in declared order; the first normalized exact match wins.
// No fuzzy matching: the same header set always yields the same mapping.
func BuildHeaderMap(headers []string, aliases map[string][]string) map[string]string {
	norm := make(map[string]string, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, ok := norm[key]; !ok {
			norm[key] = h
		}
	}
	out := make(map[string]string, len(aliases))
	for field, alist := range aliases {
		for _, candidate := range append([]string{field}, alist...) {
			if actual, ok := norm[NormalizeHeader(candidate)]; ok {
				out[field] = actual
				break
			}
		}
	}
	return out
}

// resolveRaw picks the raw cell for a canonical field from one row. A value
// under the canonical name itself takes precedence; otherwise the first
// candidate header holding a non-empty value wins. The second return is
// false when no candidate column exists in the file at all.
func resolveRaw(row map[string]string, headerNorm map[string]string, field string, aliases []string) (string, bool) {
	if v, ok := row[field]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	present := false
	for _, candidate := range append([]string{field}, aliases...) {
		actual, ok := headerNorm[NormalizeHeader(candidate)]
		if !ok {
			continue
		}
		present = true
		if v := row[actual]; strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", present
}

// normalizedHeaders indexes the file's headers by their normalized form.
func normalizedHeaders(headers []string) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, ok := m[key]; !ok {
			m[key] = h
		}
	}
	return m
}
