package jsonrpc

import "encoding/json"

/*
Request is a JSON-RPC 2.0 request envelope. The id is kept raw so it can be
echoed back byte-for-byte, whatever type the caller used.
*/
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"` // accepts string | number | null
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func NewRequest(body []byte) (*Request, error) {
	var req Request

	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	return &req, nil
}
