//go:build !release

package assert

import "fmt"

// That panics with a formatted message when cond is false. Used to guard the invariants
// of the storage engine during development; see assert_release.go for the release build.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
