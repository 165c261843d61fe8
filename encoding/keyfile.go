package enc

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"golang.org/x/crypto/pbkdf2"
	"io"
	"io/ioutil"
	"os"
)

// KeyFile manages the secret for bundle encryption.
type KeyFile struct {
	bundleSecret []byte
}

// LoadKeyFile read the 128 bytes key file and generate the secret.
func LoadKeyFile(path string) (*KeyFile, error) {

	// read key file
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// file size == 128 bytes
	if len(b) != 128 {
		return nil, errors.New("key file must be exactly 128 bytes long")
	}

	k := new(KeyFile)
	k.bundleSecret = pbkdf2.Key(b, []byte("bundle_secret"), 60000, 64, sha512.New)
	return k, nil
}

// BundleKey calculates the key for bundle encryption.
// return 32 bytes (AES 256 key)
func (k *KeyFile) BundleKey() []byte {
	return pbkdf2.Key(k.bundleSecret, []byte("BundleKey"), 5000, 32, sha256.New)
}

//--------------------------------------------------------------------------------------------------------------------//

// CreateKeyFile creates a new key file that contains exactly 128 random bytes.
// Existing files are NOT overwritten.
func CreateKeyFile(path string) error {
	// random key
	randKey := make([]byte, 128)
	n, err := io.ReadFull(rand.Reader, randKey)
	if err != nil {
		return err
	}
	if n != 128 {
		return errors.New("can't create 128 byte key")
	}

	// don't overwrite files
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: '%s'", path)
	}

	// write key file
	if err := ioutil.WriteFile(path, randKey, 0600); err != nil {
		return err
	}

	// read test
	k, err := LoadKeyFile(path)
	if err != nil {
		return err
	}
	k.BundleKey() // get key

	// success
	return nil
}
