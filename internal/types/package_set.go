package types

// PackageSet is an insertion-ordered set of package names. The resolver
// appends names in post-order and the planner iterates them in that same
// order, so the ordering is part of the contract, not a convenience.
type PackageSet struct {
	members map[string]struct{}
	order   []string
}

func NewPackageSet() *PackageSet {
	return &PackageSet{members: map[string]struct{}{}}
}

// Add appends name to the set. Returns false if it was already present.
func (s *PackageSet) Add(name string) bool {
	if _, ok := s.members[name]; ok {
		return false
	}
	s.members[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

func (s *PackageSet) Contains(name string) bool {
	_, ok := s.members[name]
	return ok
}

func (s *PackageSet) Len() int {
	return len(s.order)
}

// Names returns the members in insertion order. The slice is a copy.
func (s *PackageSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
