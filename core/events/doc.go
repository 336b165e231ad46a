// Package events provides the catalog change-event stream.
//
// Every mutation of the game catalog (scan progress, entry updates and
// removals, metadata sync completion, image cache updates) is published
// as an Event on a shared Bus. The HTTP layer bridges the bus to
// connected clients over Server-Sent Events.
//
// # Delivery Semantics
//
// Delivery is fire-and-forget. Publish never blocks the producer; a
// slow subscriber drops messages once its buffer fills. This is a
// deliberate design choice: the catalog itself is the source of truth
// and can always be re-read, so the stream only needs to be a hint
// that something changed.
//
// # Wire Schema
//
// Events serialize to one JSON object each:
//
//	{"type":"scan","status":"scanning","count":50}
//	{"type":"scan","status":"update","game":{...}}
//	{"type":"scan","status":"remove","path":"/games/old.nsp"}
//	{"type":"sync","status":"complete"}
package events
