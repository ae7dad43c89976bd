// Package bundler is a typed client for ERC-4337 bundler endpoints. It
// speaks the five eth_*UserOperation* methods and nothing else; for
// everything a node serves, use the routing client in package rpc.
package bundler

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

const (
	methodSendUserOperation        = "eth_sendUserOperation"
	methodEstimateUserOperationGas = "eth_estimateUserOperationGas"
	methodGetUserOperationByHash   = "eth_getUserOperationByHash"
	methodGetUserOperationReceipt  = "eth_getUserOperationReceipt"
	methodSupportedEntryPoints     = "eth_supportedEntryPoints"
)

// Client talks JSON-RPC to a single bundler endpoint.
type Client struct {
	rpc *gethrpc.Client
}

// Dial connects to a bundler endpoint. The identity value is attached
// to every request as the given header.
func Dial(endpoint, header, identity string) (*Client, error) {
	rpc, err := gethrpc.Dial(endpoint)
	if err != nil {
		return nil, err
	}
	rpc.SetHeader(header, identity)

	return &Client{rpc: rpc}, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// Send performs a single JSON-RPC call and returns the raw result. It
// makes Client usable as the routed transport of the routing client.
func (c *Client) Send(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.rpc.CallContext(ctx, &result, method, args...); err != nil {
		return nil, err
	}
	return result, nil
}

// SendUserOperation submits op to the mempool of the bundler serving
// the given entry point and returns the userOpHash.
func (c *Client) SendUserOperation(ctx context.Context, op *UserOperation, entryPoint common.Address) (common.Hash, error) {
	var hash common.Hash
	err := c.rpc.CallContext(ctx, &hash, methodSendUserOperation, op, entryPoint)
	return hash, err
}

// EstimateUserOperationGas asks the bundler for gas limits the
// operation would need. Signature and gas fields of op may be dummy
// values.
func (c *Client) EstimateUserOperationGas(ctx context.Context, op *UserOperation, entryPoint common.Address) (*GasEstimate, error) {
	var estimate GasEstimate
	if err := c.rpc.CallContext(ctx, &estimate, methodEstimateUserOperationGas, op, entryPoint); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// GetUserOperationByHash looks an operation up by its userOpHash. The
// result is nil when the bundler does not know the hash.
func (c *Client) GetUserOperationByHash(ctx context.Context, hash common.Hash) (*UserOperationResult, error) {
	var result *UserOperationResult
	if err := c.rpc.CallContext(ctx, &result, methodGetUserOperationByHash, hash); err != nil {
		return nil, err
	}
	return result, nil
}

// GetUserOperationReceipt fetches the inclusion receipt of an
// operation. The result is nil while the operation is pending.
func (c *Client) GetUserOperationReceipt(ctx context.Context, hash common.Hash) (*UserOperationReceipt, error) {
	var receipt *UserOperationReceipt
	if err := c.rpc.CallContext(ctx, &receipt, methodGetUserOperationReceipt, hash); err != nil {
		return nil, err
	}
	return receipt, nil
}

// SupportedEntryPoints lists the entry point contracts the bundler
// accepts operations for.
func (c *Client) SupportedEntryPoints(ctx context.Context) ([]common.Address, error) {
	var entryPoints []common.Address
	if err := c.rpc.CallContext(ctx, &entryPoints, methodSupportedEntryPoints); err != nil {
		return nil, err
	}
	return entryPoints, nil
}
