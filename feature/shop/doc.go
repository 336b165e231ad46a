// Package shop serves the legacy sideload-client listing protocols.
//
// # Endpoints
//
//   - GET /tinfoil, /tinwoo : the shop index, as plain JSON or, when
//     enabled, wrapped in the encrypted container format.
//   - GET /dbi : a minimal HTML directory listing.
//   - GET /dbi/{path} : file download (shared with the library feature).
//
// Container encoding failures are logged and fall back to plain JSON;
// the listing endpoint never hard-fails on encryption.
package shop
