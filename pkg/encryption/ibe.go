package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	ciphertextMagic   = "IBE"
	ciphertextVersion = byte(0x01)
	nonceSize         = 12
	c1Size            = bls12381.SizeOfG2AffineCompressed
	headerSize        = 4 // magic + version
)

var hashToG1DST = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")

var g2Gen = func() bls12381.G2Affine {
	_, _, _, g2 := bls12381.Generators()
	return g2
}()

// identityPoint maps a ciphertext identity to its G1 public point Q_ID.
func identityPoint(identity [32]byte) (bls12381.G1Affine, error) {
	point, err := bls12381.HashToG1(identity[:], hashToG1DST)
	if err != nil {
		return bls12381.G1Affine{}, errors.Wrap(err, "failed to hash identity to G1")
	}
	return point, nil
}

// deriveSealingKey turns the pairing value shared by encryptor and decryptor
// into an AES-256 key, bound to the identity via the HKDF info parameter.
func deriveSealingKey(gID *bls12381.GT, identity [32]byte) ([]byte, error) {
	gIDBytes := gID.Bytes()
	reader := hkdf.New(sha256.New, gIDBytes[:], nil, identity[:])
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, errors.Wrap(err, "failed to derive sealing key")
	}
	return key, nil
}

func sealingAAD(c1Bytes []byte, identity [32]byte) []byte {
	aad := make([]byte, 0, headerSize+c1Size+32)
	aad = append(aad, []byte(ciphertextMagic)...)
	aad = append(aad, ciphertextVersion)
	aad = append(aad, c1Bytes...)
	aad = append(aad, identity[:]...)
	return aad
}

// ibeEncrypt seals plaintext to an identity under the network's master public
// key. Layout: magic || version || C1 (compressed G2) || nonce || AES-GCM box.
// Only a key derived for the exact same identity can open it.
func ibeEncrypt(masterPublicKey *bls12381.G2Affine, identity [32]byte, plaintext []byte) ([]byte, error) {
	if masterPublicKey == nil || masterPublicKey.IsInfinity() {
		return nil, errors.New("master public key is a zero/infinity point")
	}

	var r fr.Element
	if _, err := r.SetRandom(); err != nil {
		return nil, errors.Wrap(err, "failed to sample ephemeral scalar")
	}
	rBig := new(big.Int)
	r.BigInt(rBig)

	var c1 bls12381.G2Affine
	c1.ScalarMultiplication(&g2Gen, rBig)

	qID, err := identityPoint(identity)
	if err != nil {
		return nil, err
	}

	// g_ID = e(Q_ID, masterPK)^r, reproducible by the holder of [s]Q_ID
	// as e([s]Q_ID, C1).
	gID, err := bls12381.Pair([]bls12381.G1Affine{qID}, []bls12381.G2Affine{*masterPublicKey})
	if err != nil {
		return nil, errors.Wrap(err, "pairing failed")
	}
	gID.Exp(gID, rBig)

	key, err := deriveSealingKey(&gID, identity)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init cipher")
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init GCM")
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "failed to sample nonce")
	}

	c1Bytes := c1.Bytes()
	sealed := gcm.Seal(nil, nonce, plaintext, sealingAAD(c1Bytes[:], identity))

	ciphertext := make([]byte, 0, headerSize+c1Size+nonceSize+len(sealed))
	ciphertext = append(ciphertext, []byte(ciphertextMagic)...)
	ciphertext = append(ciphertext, ciphertextVersion)
	ciphertext = append(ciphertext, c1Bytes[:]...)
	ciphertext = append(ciphertext, nonce...)
	ciphertext = append(ciphertext, sealed...)
	return ciphertext, nil
}

// ibeDecrypt opens a ciphertext with the identity private key [s]Q_ID that a
// threshold of network nodes releases once the access policy is satisfied.
func ibeDecrypt(identityPrivateKey *bls12381.G1Affine, identity [32]byte, ciphertext []byte) ([]byte, error) {
	if identityPrivateKey == nil || identityPrivateKey.IsInfinity() {
		return nil, errors.New("identity private key is a zero/infinity point")
	}
	if len(ciphertext) < headerSize+c1Size+nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	if string(ciphertext[:3]) != ciphertextMagic {
		return nil, errors.New("bad magic number")
	}
	if ciphertext[3] != ciphertextVersion {
		return nil, errors.Errorf("unsupported ciphertext version 0x%02x", ciphertext[3])
	}

	c1Bytes := ciphertext[headerSize : headerSize+c1Size]
	var c1 bls12381.G2Affine
	if _, err := c1.SetBytes(c1Bytes); err != nil {
		return nil, errors.Wrap(err, "failed to convert C1")
	}
	// e(sk, O) is the identity element for every sk, which would let an
	// attacker forge ciphertexts under a known key.
	if c1.IsInfinity() {
		return nil, errors.New("C1 is the infinity point")
	}

	gID, err := bls12381.Pair([]bls12381.G1Affine{*identityPrivateKey}, []bls12381.G2Affine{c1})
	if err != nil {
		return nil, errors.Wrap(err, "pairing failed")
	}

	key, err := deriveSealingKey(&gID, identity)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init cipher")
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init GCM")
	}

	nonce := ciphertext[headerSize+c1Size : headerSize+c1Size+nonceSize]
	sealed := ciphertext[headerSize+c1Size+nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, sealingAAD(c1Bytes, identity))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt")
	}
	return plaintext, nil
}

// DeriveIdentityKey computes [s]Q_ID from the master secret. In production the
// master secret never exists in one place and the network assembles this key
// from partial signatures; the direct form serves local deployments and tests.
func DeriveIdentityKey(masterSecret *fr.Element, identity [32]byte) (bls12381.G1Affine, error) {
	qID, err := identityPoint(identity)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	sBig := new(big.Int)
	masterSecret.BigInt(sBig)
	var key bls12381.G1Affine
	key.ScalarMultiplication(&qID, sBig)
	return key, nil
}

// MasterPublicKeyFromSecret returns [s]G2 for a locally held master secret.
func MasterPublicKeyFromSecret(masterSecret *fr.Element) bls12381.G2Affine {
	sBig := new(big.Int)
	masterSecret.BigInt(sBig)
	var pk bls12381.G2Affine
	pk.ScalarMultiplication(&g2Gen, sBig)
	return pk
}
