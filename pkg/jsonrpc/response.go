package jsonrpc

import (
	"encoding/json"

	"github.com/theapemachine/cinematch/pkg/errors"
)

/*
Response is a JSON-RPC 2.0 response envelope. A nil ID marshals as null, which
is what we want when the request id could not be recovered.
*/
type Response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      json.RawMessage  `json:"id"`
	Result  any              `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
}

func NewResult(id json.RawMessage, result any) Response {
	return Response{
		JSONRPC: Version,
		ID:      id,
		Result:  result,
	}
}

func NewErrorResponse(id json.RawMessage, e *errors.RpcError) Response {
	if e == nil {
		e = errors.ErrInternal
	}

	return Response{
		JSONRPC: Version,
		ID:      id,
		Error:   e,
	}
}
