package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
)

// CompareDebVersions compares two Debian version strings, returning a
// negative value when a sorts before b, zero when equal, and a positive
// value otherwise.
func CompareDebVersions(a string, b string) (int, error) {
	va, err := debversion.NewVersion(a)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid Debian version %q", a)).
			WithCause(err)
	}
	vb, err := debversion.NewVersion(b)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid Debian version %q", b)).
			WithCause(err)
	}
	return va.Compare(vb), nil
}

// DebVersionAtLeast reports whether version is greater than or equal to
// minimum under Debian version comparison semantics.
func DebVersionAtLeast(version string, minimum string) (bool, error) {
	cmp, err := CompareDebVersions(version, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}
