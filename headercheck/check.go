package headercheck

import (
	"bufio"
	"github.com/hpcd-dev/hpc/report"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// packageName is used for debug and error messages
const packageName = "headercheck"

// HeadLines is the window in which both header lines must appear.
const HeadLines = 5

// Config holds all parameters for Check.
// Defaults are applied at the CLI boundary (see main).
type Config struct {
	Root          string   // repository root
	Exts          []string // checked file extensions (with dot)
	SkipDirs      []string // directory names excluded from the scan
	LicenseLine   string   // required license identifier text
	CopyrightLine string   // required copyright text
}

// Check scans all matching source files under Root and reports every
// file that is missing the license identifier or the copyright line in
// its first lines. The returned paths are relative to Root and sorted.
func Check(cfg Config, debugLvl uint8) ([]string, error) {
	// debug (0=off, 1=debug, 2=high)
	debug := debugLvl >= report.DebugHigh

	skip := make(map[string]bool)
	for _, d := range cfg.SkipDirs {
		skip[d] = true
	}

	// Walk
	var violations []string
	err := filepath.Walk(cfg.Root, func(absPath string, info os.FileInfo, err error) error {
		// WalkFunc errors
		if err != nil {
			return err
		}

		// skip excluded folders
		if info.IsDir() {
			if absPath != cfg.Root && skip[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// extension filter
		if !matchExt(info.Name(), cfg.Exts) {
			return nil
		}

		// check the file header
		ok, err := hasHeader(absPath, cfg.LicenseLine, cfg.CopyrightLine)
		if err != nil {
			return err
		}
		if ok {
			if debug {
				log.Printf("DEBUG: %s/Check: ok: '%s'", packageName, absPath)
			}
			return nil
		}

		// relative path
		relPath, err := filepath.Rel(cfg.Root, absPath)
		if err != nil {
			return err
		}
		// WINDOWS/LINUX FIX: path separator = '/'
		relPath = strings.ReplaceAll(relPath, "\\", "/")
		violations = append(violations, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// sort list
	sort.Strings(violations)
	return violations, nil
}

// ----------  HELPER  -----------------------------------------------------------------------------------------------//

// matchExt reports whether name ends with one of the given extensions.
func matchExt(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// hasHeader reads the first lines of a file and looks for the license
// identifier and the copyright text.
func hasHeader(absPath, licenseLine, copyrightLine string) (bool, error) {
	fh, err := os.Open(absPath)
	if err != nil {
		return false, err // open error
	}
	defer fh.Close() // CLOSE

	foundLicense := false
	foundCopyright := false

	scanner := bufio.NewScanner(fh)
	for i := 0; i < HeadLines && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.Contains(line, licenseLine) {
			foundLicense = true
		}
		if strings.Contains(line, copyrightLine) {
			foundCopyright = true
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err // read error
	}

	return foundLicense && foundCopyright, nil
}
