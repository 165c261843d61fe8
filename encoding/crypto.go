package enc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// IVSize is the length of the AES-CTR initialization vector in bytes.
const IVSize = aes.BlockSize

// NewIV returns a fresh random IV.
// Every encrypted stream MUST use its own IV, the bundle key is static.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// CryptoWriter encrypts everything written to w with AES-CTR.
// There is no padding, the ciphertext has the length of the plaintext.
func CryptoWriter(w io.Writer, iv, key []byte) (io.Writer, error) {
	stream, err := ctrStream(iv, key)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamWriter{S: stream, W: w}, nil
}

// CryptoReader decrypts everything read from r with AES-CTR.
// The same iv and key as for the encryption are required.
func CryptoReader(r io.Reader, iv, key []byte) (io.Reader, error) {
	stream, err := ctrStream(iv, key)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamReader{S: stream, R: r}, nil
}

// ----------  HELPER  -----------------------------------------------------------------------------------------------//

// ctrStream builds the AES-CTR stream cipher.
func ctrStream(iv, key []byte) (cipher.Stream, error) {
	if len(iv) != IVSize {
		return nil, errors.New("iv must be exactly 16 bytes long")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err // wrong key length
	}
	return cipher.NewCTR(block, iv), nil
}
