package dataset

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"golang.org/x/text/unicode/norm"
	"io"
	"os"
	"sort"
	"strings"
)

// Discover lists all data files in dir that follow the naming scheme.
// Other files and sub folders are ignored. The returned names are sorted.
func Discover(dir string) ([]string, error) {
	// open folder
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// read folder list
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	// filter data files
	list := make([]string, 0, len(names))
	for _, name := range names {
		// UTF8 FIX: Text normalization
		// https://blog.golang.org/normalization
		name = norm.NFC.String(name)
		// WINDOWS/LINUX FIX: path separator = '/'
		name = strings.ReplaceAll(name, "\\", "/")

		if MatchName(name) {
			list = append(list, name)
		}
	}

	// sort list
	sort.Strings(list)
	return list, nil
}

// FileDigest read a single file and return the SHA-256 digest of its
// content (lowercase hex) and its size in bytes.
func FileDigest(absPath string) (digest string, size int64, err error) {
	// file check
	st, err := os.Stat(absPath)
	if err != nil {
		return "", 0, err // stat error (file not found)
	}
	if st.IsDir() {
		return "", 0, errors.New("file is a folder")
	}

	// open file handler
	fh, err := os.Open(absPath)
	if err != nil {
		return "", 0, err // open error
	}
	defer fh.Close() // CLOSE

	// hashing
	hh := sha256.New()
	size, err = io.Copy(hh, fh)
	if err != nil {
		return "", 0, err // hash error
	}
	digest = fmt.Sprintf("%x", hh.Sum(nil))

	return digest, size, nil
}
