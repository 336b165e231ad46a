// Package library exposes the game catalog over HTTP.
//
// # Endpoints
//
//   - GET /api/games : the full catalog as JSON.
//   - GET /api/info : reachable addresses, port, and WebDAV settings.
//   - GET /api/sync : trigger a metadata sync plus full rescan.
//   - GET /events : catalog change events as Server-Sent Events.
//   - GET /files/{path} : stream a game file, with download tracking.
//
// File downloads guard against path traversal and feed the downloads
// tracker so the frontend can show live transfer speeds.
package library
