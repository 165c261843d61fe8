package enc_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	enc "github.com/hpcd-dev/hpc/encoding"
)

func TestCreateKeyFile(t *testing.T) {
	absPath := filepath.Join(t.TempDir(), "test.key")

	if err := enc.CreateKeyFile(absPath); err != nil {
		t.Fatal(err)
	}

	// 128 random bytes
	b, err := ioutil.ReadFile(absPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 128 {
		t.Fatalf("len %d", len(b))
	}

	// don't overwrite files
	if err := enc.CreateKeyFile(absPath); err == nil {
		t.Fatal("no error")
	}
}

func TestLoadKeyFile(t *testing.T) {
	dir := t.TempDir()

	// wrong size
	absPath := filepath.Join(dir, "short.key")
	if err := ioutil.WriteFile(absPath, make([]byte, 100), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := enc.LoadKeyFile(absPath); err == nil {
		t.Fatal("no error")
	}

	// missing file
	if _, err := enc.LoadKeyFile(filepath.Join(dir, "missing.key")); err == nil {
		t.Fatal("no error")
	}

	// valid key file: stable 32 byte bundle key
	absPath = filepath.Join(dir, "test.key")
	if err := enc.CreateKeyFile(absPath); err != nil {
		t.Fatal(err)
	}
	k1, err := enc.LoadKeyFile(absPath)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := enc.LoadKeyFile(absPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(k1.BundleKey()) != 32 {
		t.Fatalf("len %d", len(k1.BundleKey()))
	}
	if !bytes.Equal(k1.BundleKey(), k2.BundleKey()) {
		t.Fatal("key not deterministic")
	}
}
