package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const jsonrpcVersion = "2.0"

// jsonrpcRequest is the wire envelope POSTed to the node endpoint. The
// id only needs to be informative, not unique, so wall-clock time is
// good enough.
type jsonrpcRequest struct {
	Version string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type jsonrpcResponse struct {
	Version string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// CallRaw performs a node-endpoint call and returns the full response
// envelope, keeping the id echo and version marker that Send strips.
// It never consults the routing scheme.
func (c *Client) CallRaw(ctx context.Context, method string, args ...interface{}) ([]byte, error) {
	if args == nil {
		// params must serialize as an array, not null
		args = []interface{}{}
	}

	payload, err := json.Marshal(jsonrpcRequest{
		Version: jsonrpcVersion,
		ID:      time.Now().UnixMilli(),
		Method:  method,
		Params:  args,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.upstreamURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.identityKey, c.identityVal)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "call %s", method)
	}
	defer resp.Body.Close()

	// read the body even on a failed status, it is often the best
	// diagnostic the server gives us
	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Params:     args,
			Body:       body,
		}
	}
	if readErr != nil {
		return nil, errors.Wrapf(readErr, "read response of %s", method)
	}

	return body, nil
}

// sendUpstream is the node-endpoint path of Send: envelope in, unwrapped
// result value out.
func (c *Client) sendUpstream(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	raw, err := c.CallRaw(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	var resp jsonrpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrapf(err, "decode response of %s", method)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	return resp.Result, nil
}
