package bundle

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"github.com/hpcd-dev/hpc/dataset"
	enc "github.com/hpcd-dev/hpc/encoding"
	"github.com/hpcd-dev/hpc/report"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Unpack restores all data files from a bundle into outDir.
// An encrypted bundle needs the matching key file.
func Unpack(bundleFile, outDir string, keyFile *enc.KeyFile, debugLvl uint8) error {
	// debug (0=off, 1=debug, 2=high)
	debug := debugLvl >= report.DebugLow

	// open the bundle and check the header
	fh, err := os.Open(bundleFile)
	if err != nil {
		return err
	}
	defer fh.Close() // CLOSE

	head := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(fh, head); err != nil {
		return err
	}
	if !bytes.Equal(head[:len(magic)], magic) {
		return errors.New("not a bundle file (magic number invalid)")
	}
	flags := head[len(magic)]

	// payload reader chain: file -> [crypt] -> zstd -> tar
	var payload io.Reader = fh
	if flags&flagCrypt != 0 {
		if keyFile == nil {
			return errors.New("bundle is encrypted: key file required")
		}
		iv := make([]byte, enc.IVSize)
		if _, err := io.ReadFull(fh, iv); err != nil {
			return err
		}
		payload, err = enc.CryptoReader(payload, iv, keyFile.BundleKey())
		if err != nil {
			return err
		}
	}
	zr, err := enc.DecompressReader(payload)
	if err != nil {
		return err
	}
	defer zr.Close() // CLOSE
	tr := tar.NewReader(zr)

	// create the target dir (if absent)
	if err := os.MkdirAll(outDir, 0700); err != nil {
		return err
	}

	// FILE LOOP
	count := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		// only plain data files are bundled
		if !dataset.MatchName(hdr.Name) {
			return fmt.Errorf("unexpected bundle entry: '%s'", hdr.Name)
		}

		out, err := os.Create(filepath.Join(outDir, hdr.Name))
		if err != nil {
			return err
		}
		n, err := io.Copy(out, tr)
		if cErr := out.Close(); err == nil {
			err = cErr
		}
		if err != nil {
			return err
		}
		if n != hdr.Size {
			return fmt.Errorf("short read: %d != %d", n, hdr.Size)
		}
		count++

		if debug {
			log.Printf("DEBUG: %s/Unpack: restored [%d] '%s': size=%d", packageName, count, hdr.Name, n)
		}
	}
	if count == 0 {
		return errors.New("empty bundle")
	}
	return nil
}
