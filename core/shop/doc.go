// Package shop implements the legacy sideload-client listing format:
// the JSON shop index and the compressed/encrypted binary container
// that optionally wraps it.
//
// # Container Format
//
// The container is a fixed framing understood by Tinfoil-compatible
// clients: a 7-byte ASCII magic, one flag byte, a 256-byte RSA-OAEP
// wrapped AES-128 session key, an 8-byte little-endian compressed
// length, and the zstd-compressed payload encrypted block-by-block
// with AES-ECB. The session key is random per request.
//
// The cryptography here exists for wire compatibility with the
// client, not as a security boundary: the public key is embedded in
// every client binary and ECB mode leaks block structure.
package shop
