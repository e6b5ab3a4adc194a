package probe

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
)

// request is the outbound query message.
type request struct {
	CallType  string `json:"callType"`
	Parameter string `json:"parameter"`
	Signature string `json:"signature"`
}

// message holds the fields we care about from any inbound device message.
// The handshake carries nonce (and uname); query responses carry data,
// success and the rotated nonce.
type message struct {
	Nonce   string `json:"nonce"`
	Data    string `json:"data"`
	Success string `json:"success"`
	Uname   string `json:"uname"`
}

// Signature computes the proof-of-possession hash for one query round:
// SHA1 over the raw query key immediately followed by the current nonce,
// hex-encoded lowercase. No separator is inserted between the two.
func Signature(queryKey, nonce string) string {
	sum := sha1.Sum([]byte(queryKey + nonce))
	return hex.EncodeToString(sum[:])
}

// decodeMessage parses an inbound device message. Well-formed messages are
// JSON objects, but some firmware builds emit raw control characters inside
// the nonce, which strict JSON rejects. In that case we fall back to lifting
// the quoted field values straight out of the byte stream so the nonce
// reaches the signature exactly as the device sent it.
func decodeMessage(raw []byte) message {
	var msg message
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}
	msg.Nonce = extractField(raw, "nonce")
	msg.Data = extractField(raw, "data")
	msg.Success = extractField(raw, "success")
	return msg
}

// extractField returns the quoted string value for key in a JSON-ish object,
// or "" if the key is absent. The value bytes are returned verbatim; only a
// backslash-escaped quote is skipped over so the value's closing quote is
// found correctly.
func extractField(raw []byte, key string) string {
	marker := `"` + key + `"`
	idx := bytes.Index(raw, []byte(marker))
	if idx < 0 {
		return ""
	}
	i := idx + len(marker)

	// Skip whitespace, the colon, more whitespace, then the opening quote.
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t' || raw[i] == ':') {
		i++
	}
	if i >= len(raw) || raw[i] != '"' {
		return ""
	}
	i++

	start := i
	for i < len(raw) {
		switch raw[i] {
		case '\\':
			i += 2
		case '"':
			return string(raw[start:i])
		default:
			i++
		}
	}
	return ""
}
