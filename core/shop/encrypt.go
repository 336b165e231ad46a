package shop

import (
	"crypto/aes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Container framing constants. These are wire-protocol values
// expected by sideload clients; changing any of them breaks
// compatibility.
const (
	containerMagic = "TINFOIL"
	containerFlag  = 0xFD
	wrappedKeySize = 256
)

// clientPublicKey is the 2048-bit RSA key baked into the Tinfoil
// client. The shop wraps each per-request AES key under it; only the
// client can unwrap. This is format obfuscation for a legacy client,
// not a security boundary.
const clientPublicKey = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAvPdrJigQ0rZAy+jla7hS
jwen8gkF0gjtl+lZGY59KatNd9Kj2gfY7dTMM+5M2tU4Wr3nk8KWr5qKm3hzo/2C
Gbc55im3tlRl6yuFxWQ+c/I2SM5L3xp6eiLUcumMsEo0B7ELmtnHTGCCNAIzTFzV
4XcWGVbkZj83rTFxpLsa1oArTdcz5CG6qgyVe7KbPsft76DAEkV8KaWgnQiG0Dps
INFy4vISmf6L1TgAryJ8l2K4y8QbymyLeMsABdlEI3yRHAm78PSezU57XtQpHW5I
aupup8Es6bcDZQKkRsbOeR9T74tkj+k44QrjZo8xpX9tlJAKEEmwDlyAg0O5CLX3
CQIDAQAB
-----END PUBLIC KEY-----`

// shopEncoder is reused across requests. zstd.Encoder is safe for
// concurrent EncodeAll use.
var shopEncoder *zstd.Encoder

// shopPublicKey is the parsed clientPublicKey.
var shopPublicKey *rsa.PublicKey

func init() {
	var err error
	shopEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
	)
	if err != nil {
		panic("shop: zstd encoder initialization failed: " + err.Error())
	}

	block, _ := pem.Decode([]byte(clientPublicKey))
	if block == nil {
		panic("shop: embedded public key is not valid PEM")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		panic("shop: embedded public key parse failed: " + err.Error())
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		panic("shop: embedded public key is not RSA")
	}
	shopPublicKey = key
}

// Encrypt wraps a shop index payload in the encrypted container
// format:
//
//	bytes 0..6    ASCII "TINFOIL"
//	byte  7       flag (0xFD)
//	bytes 8..263  RSA-OAEP(SHA-256) encrypted AES-128 key
//	bytes 264..271 little-endian uint64 compressed payload length
//	bytes 272..   AES-ECB encrypted, zero-padded zstd stream
//
// A fresh random key is generated per call, so outputs are never
// reusable across requests. The compressed payload is zero-padded to
// the AES block size; when it is already aligned no padding is added,
// and the decoder recovers the exact content from the stored length
// alone.
func Encrypt(payload []byte) ([]byte, error) {
	key := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}

	compressed := shopEncoder.EncodeAll(payload, nil)

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, shopPublicKey, key, nil)
	if err != nil {
		return nil, fmt.Errorf("wrap session key: %w", err)
	}
	if len(wrappedKey) != wrappedKeySize {
		// The client reads a fixed 256-byte field, so only a 2048-bit
		// key can produce a valid container.
		return nil, fmt.Errorf("wrapped key is %d bytes, want %d", len(wrappedKey), wrappedKeySize)
	}

	cipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	padded := compressed
	if rem := len(compressed) % aes.BlockSize; rem != 0 {
		padded = append(padded, make([]byte, aes.BlockSize-rem)...)
	}

	// ECB: every block encrypted independently, no IV. Required by
	// the client's decoder.
	encrypted := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		cipher.Encrypt(encrypted[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}

	out := make([]byte, 0, len(containerMagic)+1+len(wrappedKey)+8+len(encrypted))
	out = append(out, containerMagic...)
	out = append(out, containerFlag)
	out = append(out, wrappedKey...)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(compressed)))
	out = append(out, encrypted...)
	return out, nil
}

// CompressedSize reports the zstd-compressed size of payload at the
// shop's compression level, without building a container.
func CompressedSize(payload []byte) int {
	return len(shopEncoder.EncodeAll(payload, nil))
}
