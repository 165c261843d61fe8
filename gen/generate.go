package gen

import (
	"errors"
	"fmt"
	"github.com/hpcd-dev/hpc/dataset"
	"github.com/hpcd-dev/hpc/report"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// ErrConfig is returned for rejected generator parameters.
var ErrConfig = errors.New("invalid configuration")

// ErrDataExists is returned if the target directory already holds data
// files and the force flag is not set.
var ErrDataExists = errors.New("data already exists")

// Config holds all parameters for Generate.
// Defaults are applied at the CLI boundary (see main).
type Config struct {
	Dir    string // target directory for the data files
	Count  int    // number of data files
	SizeMB int    // size of each data file in MiB
	Force  bool   // delete and regenerate existing data files
	Seed   int64  // seed for the random source (0 = time based)
}

// Generate writes Count data files of SizeMB MiB each into Dir.
// The files are filled with seeded pseudo-random bytes and named with
// zero-padded sequential indices starting at 1.
//
// Existing data files are never overwritten: without the force flag the
// call fails, with the force flag all matching files are deleted first.
// Other files in the directory are left alone.
//
// The returned total is Count*SizeMB*MiB calculated from the
// configuration, not a re-measurement of the files on disk.
func Generate(cfg Config, debugLvl uint8) (totalBytes int64, err error) {
	// debug (0=off, 1=debug, 2=high)
	debug := debugLvl >= report.DebugLow

	// check config
	if cfg.Count < 1 {
		return 0, fmt.Errorf("%w: file count must be a positive integer: %d", ErrConfig, cfg.Count)
	}
	if cfg.SizeMB < 1 {
		return 0, fmt.Errorf("%w: file size must be a positive integer: %d", ErrConfig, cfg.SizeMB)
	}

	// create the target dir (if absent) and look for old data files
	if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
		return 0, err
	}
	old, err := dataset.Discover(cfg.Dir)
	if err != nil {
		return 0, err
	}
	if len(old) > 0 {
		if !cfg.Force {
			return 0, fmt.Errorf("%w: %d data files in '%s' (set the force flag to regenerate)", ErrDataExists, len(old), cfg.Dir)
		}
		// force: remove all old data files
		for _, name := range old {
			if err := os.Remove(filepath.Join(cfg.Dir, name)); err != nil {
				return 0, err
			}
		}
		if debug {
			log.Printf("DEBUG: %s/Generate: removed %d old data files from '%s'", packageName, len(old), cfg.Dir)
		}
	}

	// random source
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	random := rand.New(rand.NewSource(seed))

	// FILE LOOP
	size := int64(cfg.SizeMB) * dataset.MiB
	for i := 1; i <= cfg.Count; i++ {
		absPath := filepath.Join(cfg.Dir, dataset.FileName(i, cfg.Count))

		start := time.Now()
		if err := writeRandomFile(absPath, size, random); err != nil {
			return 0, err
		}

		// write detail
		if debug {
			var sinceInSec = float64(time.Since(start)) / float64(time.Second)
			if sinceInSec < 0.001 {
				sinceInSec = 0.001
			}
			var sizeInMb = float64(size) / (1024 * 1024)
			log.Printf("DEBUG: %s/Generate: wrote '%s'\t[%.2f MB/s]", packageName, absPath, sizeInMb/sinceInSec)
		}
	}

	// estimate from the configuration (see doc comment)
	totalBytes = int64(cfg.Count) * size
	return totalBytes, nil
}

// ----------  HELPER  -----------------------------------------------------------------------------------------------//

// writeRandomFile writes exactly size bytes from the random source to absPath.
func writeRandomFile(absPath string, size int64, random *rand.Rand) error {
	fh, err := os.Create(absPath)
	if err != nil {
		return err // create error
	}
	defer fh.Close() // CLOSE

	n, err := io.Copy(fh, io.LimitReader(random, size))
	if err != nil {
		return err // write error
	}
	if n != size {
		return fmt.Errorf("short write: %d != %d", n, size)
	}
	return fh.Close()
}
