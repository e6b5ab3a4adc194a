// Package probe implements the per-host session protocol for nGeniusPULSE
// nPoint devices.
//
// A session is one short-lived WebSocket connection on port 8000. The device
// opens with a handshake message carrying a nonce; each subsequent query is a
// JSON message of the form
//
//	{"callType": <key>, "parameter": "", "signature": <sha1 hex>}
//
// where the signature is SHA1 over the query key concatenated with the
// current nonce. Every response both answers the query (the "data" field)
// and rotates the nonce for the next round, so queries are strictly
// sequential and a nonce is never used twice.
//
// All failures — connect, missing nonce, mid-chain transport error, MAC
// filter mismatch — are absorbed at the session boundary and reported as a
// NotFound Outcome. Nothing in this package panics or returns errors across
// sessions; partial-failure isolation is the scheduler's contract and this
// package upholds its half of it.
package probe
