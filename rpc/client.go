package rpc

import (
	"context"
	"encoding/json"
	"sync"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/aawallet/aarpc/logutils"
	"github.com/aawallet/aarpc/params"
)

// Sender is the minimal transport contract: it performs a single
// JSON-RPC call and returns the raw result value. *Client satisfies it,
// as does bundler.Client, so transports compose freely.
type Sender interface {
	Send(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error)
}

// Client represents an RPC client with a custom routing scheme. It
// automatically decides where an RPC call goes - the bundler endpoint
// for account-abstraction methods, or the node endpoint for everything
// else.
//
// Client is safe for concurrent use. Each call is a single HTTP round
// trip; there is no retry and no fallback between the two endpoints.
type Client struct {
	sync.RWMutex

	upstreamURL string
	identityKey string
	identityVal string

	bundler Sender
	router  *router

	logger *zap.Logger
}

// NewClient initializes a Client against the node endpoint described by
// config. If config carries a bundler URL the bundler transport is
// attached immediately; otherwise it can be attached later with
// SetBundlerRPC.
func NewClient(config params.ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		upstreamURL: config.RPCURL,
		identityKey: config.IdentityHeaderName(),
		identityVal: config.IdentityValue,
		router:      newRouter(config.RoutedMethods...),
		logger:      logutils.ZapLogger().Named("rpc.Client"),
	}

	return c.SetBundlerRPC(config.BundlerURL), nil
}

// SetBundlerRPC attaches a bundler endpoint for account-abstraction
// calls. An empty URL leaves the client as it was, with every call
// going to the node endpoint. The client is returned so configuration
// calls can be chained.
func (c *Client) SetBundlerRPC(url string) *Client {
	if url == "" {
		return c
	}

	client, err := gethrpc.Dial(url)
	if err != nil {
		c.logger.Warn("dial bundler endpoint", zap.String("url", url), zap.Error(err))
		return c
	}
	client.SetHeader(c.identityKey, c.identityVal)

	c.Lock()
	c.bundler = &gethSender{client: client}
	c.Unlock()

	return c
}

// SetBundlerSender attaches an already constructed transport for the
// routed method set. It is the injection point for bundler.Client or
// any other Sender.
func (c *Client) SetBundlerSender(sender Sender) *Client {
	c.Lock()
	c.bundler = sender
	c.Unlock()

	return c
}

// Send performs a JSON-RPC call and returns the raw result value,
// unwrapped from the response envelope.
//
// It uses the routing scheme: methods from the routed set go to the
// bundler transport when one is configured, everything else is POSTed
// to the node endpoint. A failure on the chosen path is terminal for
// the call.
func (c *Client) Send(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	if bundler := c.bundlerSender(); bundler != nil && c.router.routeToBundler(method) {
		return bundler.Send(ctx, method, args...)
	}

	return c.sendUpstream(ctx, method, args...)
}

// Call performs a JSON-RPC call with the given arguments and unmarshals
// into result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into
// it. You can also pass nil, in which case the result is ignored.
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	ctx := context.Background()
	return c.CallContext(ctx, result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the
// context is canceled before the call has successfully returned,
// CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into
// it. You can also pass nil, in which case the result is ignored.
//
// It uses the same routing scheme as Send.
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	raw, err := c.Send(ctx, method, args...)
	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}

	return json.Unmarshal(raw, result)
}

// bundlerSender is a concurrently safe accessor for the bundler
// transport, which may be attached after construction.
func (c *Client) bundlerSender() Sender {
	c.RLock()
	defer c.RUnlock()
	return c.bundler
}

// gethSender adapts a go-ethereum rpc client to the Sender contract.
// It is what SetBundlerRPC wires in.
type gethSender struct {
	client *gethrpc.Client
}

func (s *gethSender) Send(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := s.client.CallContext(ctx, &result, method, args...); err != nil {
		return nil, err
	}
	return result, nil
}
