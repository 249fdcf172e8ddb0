package highlight

import "fmt"

// debugChecks gates the invariant assertions scattered through this
// package. They mirror the debug_assert! calls in the Rust original: real
// bugs, not recoverable input errors, so a panic is the right response.
const debugChecks = true

func debugAssert(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
