package types

// Field names from the Debian Packages index format that the rest of the
// codebase reads by name. Every other field is carried opaquely.
const (
	FieldPackage  = "Package"
	FieldVersion  = "Version"
	FieldDepends  = "Depends"
	FieldFilename = "Filename"
)

// PackageRecord is one parsed stanza of a Packages index: a mapping from
// field name to value. Keys are kept exactly as written in the index.
// Records are immutable after parsing.
type PackageRecord struct {
	Fields map[string]string
}

// Name returns the value of the Package field.
func (r PackageRecord) Name() string {
	return r.Fields[FieldPackage]
}

// Field returns the value of the named field and whether it was present.
func (r PackageRecord) Field(key string) (string, bool) {
	value, ok := r.Fields[key]
	return value, ok
}

// Depends returns the raw Depends field value and whether it was present.
func (r PackageRecord) Depends() (string, bool) {
	return r.Field(FieldDepends)
}

// Version returns the Version field value, empty if absent.
func (r PackageRecord) Version() string {
	return r.Fields[FieldVersion]
}

// Filename returns the archive path relative to the mirror root, empty if
// the record carries no Filename field.
func (r PackageRecord) Filename() string {
	return r.Fields[FieldFilename]
}

// PackageIndex maps package names to their records. Built once per run and
// treated as read-only by the resolution components, so concurrent reads
// are safe.
type PackageIndex map[string]PackageRecord

// DependencyGroup is one comma-separated group from a Depends field: an
// ordered list of interchangeable candidate names, version constraints and
// architecture qualifiers already stripped.
type DependencyGroup struct {
	Alternatives []string
}

// First returns the group's first candidate. Resolution only ever follows
// this one; the remaining alternatives are never considered.
func (g DependencyGroup) First() string {
	if len(g.Alternatives) == 0 {
		return ""
	}
	return g.Alternatives[0]
}
