// Package catalog defines the fixed, ordered set of attribute queries an
// nGeniusPULSE nPoint device answers over its WebSocket service.
//
// The catalog is ordered data, not configuration: the device re-issues its
// authentication nonce after every exchange, so the order entries are sent in
// is part of the protocol. Display levels gate how deep into the catalog a
// scan goes; see ForLevel. Labels exist in English and Spanish and affect
// presentation only.
package catalog
