package params

import (
	"encoding/json"
	"fmt"

	validator "gopkg.in/go-playground/validator.v9"
)

// DefaultIdentityHeader is the header carrying the client
// identification value when no other header is configured.
const DefaultIdentityHeader = "User-Agent"

// ----------
// ClientConfig
// ----------

// ClientConfig stores construction-time options for the routing RPC
// client. It is captured once and treated as read-only afterwards.
type ClientConfig struct {
	// RPCURL sets the HTTP endpoint of the Ethereum node the client
	// talks to by default.
	RPCURL string `validate:"required,url"`

	// BundlerURL optionally points at an ERC-4337 bundler. When set,
	// account-abstraction methods are routed there instead of RPCURL.
	BundlerURL string `validate:"omitempty,url"`

	// IdentityHeader is the name of the HTTP header carrying
	// IdentityValue on every outbound request. Defaults to User-Agent.
	IdentityHeader string

	// IdentityValue identifies this client to the receiving
	// infrastructure, e.g. "my-wallet/1.2.3".
	IdentityValue string `validate:"required"`

	// RoutedMethods overrides the set of methods sent to the bundler.
	// Leave empty for the standard ERC-4337 method set.
	RoutedMethods []string
}

// IdentityHeaderName returns the configured identification header name,
// falling back to DefaultIdentityHeader.
func (c *ClientConfig) IdentityHeaderName() string {
	if c.IdentityHeader == "" {
		return DefaultIdentityHeader
	}
	return c.IdentityHeader
}

// Validate checks the config for inconsistent values and returns an
// error describing the first one found.
func (c *ClientConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("ClientConfig is invalid: %v", err)
	}
	return nil
}

// String dumps config object as nicely indented JSON
func (c *ClientConfig) String() string {
	data, _ := json.MarshalIndent(c, "", "    ") // nolint: gas
	return string(data)
}
