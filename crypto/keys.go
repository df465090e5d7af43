// Package crypto provides the pure cryptographic primitives the core
// relies on: key generation/parsing and public-key comparison. Signature
// verification itself happens upstream of the core (see op.Context)
// and is not repeated here.
package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// PublicKeySize is the length in bytes of a compressed secp256k1 public key,
// the representation stored in Authority key-weight maps.
const PublicKeySize = 33

// PublicKey is a compressed secp256k1 public key used as a weighted member of
// an Authority.
type PublicKey [PublicKeySize]byte

// PrivateKey wraps an ECDSA private key over the secp256k1 curve.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// GeneratePrivateKey creates a new random private key.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := ecdsa.GenerateKey(ethcrypto.S256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("crypto: generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes parses a raw 32-byte secp256k1 scalar.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, fmt.Errorf("crypto: parse private key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// Bytes returns the raw scalar encoding of the private key.
func (k *PrivateKey) Bytes() []byte {
	return ethcrypto.FromECDSA(k.key)
}

// PubKey derives the compressed public key for this private key.
func (k *PrivateKey) PubKey() PublicKey {
	var pub PublicKey
	copy(pub[:], ethcrypto.CompressPubkey(&k.key.PublicKey))
	return pub
}

// ParsePublicKey parses a compressed secp256k1 public key.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var pub PublicKey
	if len(b) != PublicKeySize {
		return pub, fmt.Errorf("crypto: public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	if _, err := ethcrypto.DecompressPubkey(b); err != nil {
		return pub, fmt.Errorf("crypto: invalid public key: %w", err)
	}
	copy(pub[:], b)
	return pub, nil
}

// Bytes returns the raw compressed encoding.
func (p PublicKey) Bytes() []byte {
	return append([]byte(nil), p[:]...)
}

// String renders the public key as hex, mirroring how the teacher renders
// keys for logs and JSON without pulling in a bech32/WIF wallet format.
func (p PublicKey) String() string {
	return fmt.Sprintf("%x", p[:])
}
