package dataset

import (
	"fmt"
	"regexp"
)

// namePattern matches the data file naming scheme 'random-<index>.bin'.
var namePattern = regexp.MustCompile(`^random-[0-9]+\.bin$`)

// IndexWidth returns the zero-padding width for a file set of the given size.
// The width follows the number of digits in count, with a minimum of 2.
// Zero-padded indices make the lexicographic order equal to the numeric order.
func IndexWidth(count int) int {
	width := len(fmt.Sprintf("%d", count))
	if width < 2 {
		width = 2
	}
	return width
}

// FileName returns the name of the data file with the given index (1..count).
func FileName(index, count int) string {
	return fmt.Sprintf("random-%0*d.bin", IndexWidth(count), index)
}

// MatchName reports whether name follows the data file naming scheme.
func MatchName(name string) bool {
	return namePattern.MatchString(name)
}
