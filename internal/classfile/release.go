package classfile

import "fmt"

// ArchiveNameForRelease names the ct-sym-style bootclasspath archive entry
// for a given `--release` API level: digits for levels 5 through 9, then
// letters A through Z for 10 and up. The driver uses this to pick a
// bootclasspath archive name when `--release` is given without an explicit
// `--bootclasspath`.
func ArchiveNameForRelease(level int) (string, error) {
	switch {
	case level >= 5 && level <= 9:
		return fmt.Sprintf("%d", level), nil
	case level >= 10 && level <= 35:
		return string(rune('A' + (level - 10))), nil
	default:
		return "", fmt.Errorf("release %d is out of the supported ct-sym range [5, 35]", level)
	}
}
