package jsonrpc

import (
	"bytes"
	"encoding/json"
)

// Version is the only protocol version tag accepted on the wire.
const Version = "2.0"

/*
IsFalsyID reports whether a raw request id should be treated as absent.
Telex sends string ids, but callers have been seen sending null, "" and 0,
all of which we reject on the synchronous path.
*/
func IsFalsyID(id json.RawMessage) bool {
	trimmed := bytes.TrimSpace(id)

	if len(trimmed) == 0 {
		return true
	}

	switch string(trimmed) {
	case "null", `""`, "0", "false":
		return true
	}

	return false
}
