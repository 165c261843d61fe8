package batch

import (
	"bufio"
	"fmt"
	"github.com/hpcd-dev/hpc/dataset"
	"github.com/hpcd-dev/hpc/report"
	"log"
	"os"
	"regexp"
)

// manifestLine matches a manifest record: '<sha256 hex>  <path>'.
var manifestLine = regexp.MustCompile(`^([0-9a-f]{64})  (.+)$`)

// Verify recomputes the digest of every file listed in the manifest and
// compares it with the recorded value. Paths are resolved exactly as
// they appear in the manifest. One line per file is printed to stdout
// ('<path>: OK' or '<path>: FAILED'); missing files count as failed.
func Verify(manifestPath string, debugLvl uint8) error {
	fh, err := os.Open(manifestPath)
	if err != nil {
		return err
	}
	defer fh.Close() // CLOSE

	sum := 0
	bad := 0
	lineNo := 0

	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue // skip blank lines
		}

		m := manifestLine.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("invalid manifest line %d: '%s'", lineNo, line)
		}
		want, path := m[1], m[2]
		sum++

		// recompute and compare
		is, _, err := dataset.FileDigest(path)
		if err != nil || is != want {
			bad++
			fmt.Printf("%s: FAILED\n", path)
			if debugLvl >= report.DebugLow {
				log.Printf("DEBUG: %s/Verify: '%s': is=%s, want=%s, err=%v", packageName, path, is, want, err)
			}
			continue
		}
		fmt.Printf("%s: OK\n", path)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if bad > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrVerifyFailed, bad, sum)
	}
	return nil
}
