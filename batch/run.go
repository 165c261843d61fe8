package batch

import (
	"fmt"
	"github.com/hpcd-dev/hpc/dataset"
	"github.com/hpcd-dev/hpc/report"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Config holds all parameters for Run.
// Defaults are applied at the CLI boundary (see main).
type Config struct {
	DataDir       string              // directory with the data files
	ResultsDir    string              // target directory for summary and manifest
	ExpectedCount int                 // required number of data files
	Delay         time.Duration       // pacing delay after each file
	Sleep         func(time.Duration) // pacing policy (nil = time.Sleep)
}

// Run verifies the data file set and writes the digest manifest and the
// summary report into the results directory.
//
// The data files are processed strictly sequential and sorted by name,
// with the pacing delay after each file (including the last one).
// Both output files are truncated and rebuilt on every run, but only
// after the file set has been validated: a failed validation leaves the
// results directory untouched.
func Run(cfg Config, debugLvl uint8) error {
	// debug (0=off, 1=debug, 2=high)
	debug := debugLvl >= report.DebugLow

	// pacing policy
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	// discover the data files
	// A missing data dir means the generator never ran.
	names, err := dataset.Discover(cfg.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w in '%s' (run 'generate' first)", ErrNoData, cfg.DataDir)
		}
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w in '%s' (run 'generate' first)", ErrNoData, cfg.DataDir)
	}

	// validate the file set
	if len(names) != cfg.ExpectedCount {
		return fmt.Errorf("%w: expected %d, found %d", ErrCountMismatch, cfg.ExpectedCount, len(names))
	}

	// prepare the output files (truncate)
	if err := os.MkdirAll(cfg.ResultsDir, 0700); err != nil {
		return err
	}
	summary, err := os.Create(filepath.Join(cfg.ResultsDir, SummaryFile))
	if err != nil {
		return err
	}
	defer summary.Close() // CLOSE
	manifest, err := os.Create(filepath.Join(cfg.ResultsDir, ManifestFile))
	if err != nil {
		return err
	}
	defer manifest.Close() // CLOSE

	// summary header
	host, _ := os.Hostname()
	_, err = fmt.Fprintf(summary, "host: %s\ndate: %s\nfile_count: %d\n", host, time.Now().Format(time.RFC3339), len(names))
	if err != nil {
		return err
	}

	// FILE LOOP
	totalBytes := int64(0)
	for i, name := range names {
		absPath := filepath.Join(cfg.DataDir, name)
		relPath := filepath.ToSlash(absPath)

		// measure size
		st, err := os.Stat(absPath)
		if err != nil {
			return err
		}
		totalBytes += st.Size()

		// summary line
		if _, err := fmt.Fprintf(summary, "hashing %s (%d bytes)\n", relPath, st.Size()); err != nil {
			return err
		}

		// digest and manifest line
		start := time.Now()
		digest, _, err := dataset.FileDigest(absPath)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(manifest, "%s  %s\n", digest, relPath); err != nil {
			return err
		}

		// write detail
		if debug {
			var sinceInSec = float64(time.Since(start)) / float64(time.Second)
			if sinceInSec < 0.001 {
				sinceInSec = 0.001
			}
			var sizeInMb = float64(st.Size()) / (1024 * 1024)
			log.Printf("DEBUG: %s/Run: hashed [%d/%d] '%s'\t[%.2f MB/s]", packageName, i+1, len(names), relPath, sizeInMb/sinceInSec)
		}

		// pacing delay (also after the last file)
		sleep(cfg.Delay)
	}

	// finalize
	if _, err := fmt.Fprintf(summary, "total_bytes: %d\n", totalBytes); err != nil {
		return err
	}
	if err := manifest.Close(); err != nil {
		return err
	}
	return summary.Close()
}
