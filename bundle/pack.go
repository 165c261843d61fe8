package bundle

import (
	"archive/tar"
	"fmt"
	"github.com/hpcd-dev/hpc/dataset"
	enc "github.com/hpcd-dev/hpc/encoding"
	"github.com/hpcd-dev/hpc/report"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Pack writes all data files from dataDir into a single compressed
// bundle file, e.g. to ship a file set to a cluster. With a key file
// the payload is encrypted (AES-CTR) and the IV is stored in the
// bundle header. Existing bundle files are NOT overwritten.
//
// format: magic | flags | [iv] | zstd(tar)  or  crypt(zstd(tar))
func Pack(dataDir, outFile string, keyFile *enc.KeyFile, debugLvl uint8) error {
	// debug (0=off, 1=debug, 2=high)
	debug := debugLvl >= report.DebugLow

	// discover the data files
	names, err := dataset.Discover(dataDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no data files in '%s'", dataDir)
	}

	// don't overwrite bundles
	if _, err := os.Stat(outFile); err == nil {
		return fmt.Errorf("file already exists: '%s'", outFile)
	}

	// create the bundle file and write the header
	fh, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer fh.Close() // CLOSE

	flags := byte(0)
	if keyFile != nil {
		flags |= flagCrypt
	}
	if _, err := fh.Write(magic); err != nil {
		return err
	}
	if _, err := fh.Write([]byte{flags}); err != nil {
		return err
	}

	// payload writer chain: tar -> zstd -> [crypt] -> file
	var payload io.Writer = fh
	if keyFile != nil {
		iv, err := enc.NewIV()
		if err != nil {
			return err
		}
		if _, err := fh.Write(iv); err != nil {
			return err
		}
		payload, err = enc.CryptoWriter(payload, iv, keyFile.BundleKey())
		if err != nil {
			return err
		}
	}
	zw, err := enc.CompressWriter(payload)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(zw)

	// FILE LOOP
	for i, name := range names {
		absPath := filepath.Join(dataDir, name)
		st, err := os.Stat(absPath)
		if err != nil {
			return err
		}

		hdr := &tar.Header{
			Name:    name,
			Mode:    0600,
			Size:    st.Size(),
			ModTime: st.ModTime(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		in, err := os.Open(absPath)
		if err != nil {
			return err
		}
		n, err := io.Copy(tw, in)
		_ = in.Close()
		if err != nil {
			return err
		}
		if n != st.Size() {
			return fmt.Errorf("short read: %d != %d", n, st.Size())
		}

		if debug {
			log.Printf("DEBUG: %s/Pack: added [%d/%d] '%s': size=%d", packageName, i+1, len(names), name, st.Size())
		}
	}

	// flush the writer chain
	if err := tw.Close(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return fh.Close()
}
