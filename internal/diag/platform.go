package diag

import "runtime"

// lineSeparator joins multiple diagnostics in a Failure's Error() text,
// matching the platform line separator.
var lineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()
