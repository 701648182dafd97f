package core

import (
	"strings"

	"debdl/internal/types"
)

// ParseIndex parses Debian Packages index text into a PackageIndex.
//
// The input is a sequence of stanzas separated by blank lines. Within a
// stanza, "Key: value" lines start a field and lines beginning with
// whitespace continue the most recent field, contributing a single space
// plus their trimmed content. Parsing is best-effort by contract: lines
// with neither a colon nor leading whitespace are ignored, continuations
// without a preceding key are ignored, and stanzas without a Package field
// are dropped. When the same package name appears twice the later stanza
// replaces the earlier one wholesale.
func ParseIndex(text string) types.PackageIndex {
	index := types.PackageIndex{}

	fields := map[string]string{}
	lastKey := ""
	flush := func() {
		if name, ok := fields[types.FieldPackage]; ok && name != "" {
			index[name] = types.PackageRecord{Fields: fields}
		}
		fields = map[string]string{}
		lastKey = ""
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if lastKey != "" {
				fields[lastKey] += " " + strings.TrimSpace(line)
			}
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		fields[key] = strings.TrimSpace(value)
		lastKey = key
	}
	flush()

	return index
}
