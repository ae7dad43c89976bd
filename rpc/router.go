package rpc

import (
	mapset "github.com/deckarep/golang-set"
)

// bundlerMethods is the ERC-4337 namespace: calls a node does not
// serve and a bundler does. Routing is exact method-name membership,
// no prefix or wildcard matching.
var bundlerMethods = []string{
	"eth_sendUserOperation",
	"eth_estimateUserOperationGas",
	"eth_getUserOperationByHash",
	"eth_getUserOperationReceipt",
	"eth_supportedEntryPoints",
}

// router decides whether a given method should be dispatched to the
// bundler transport. The method set is fixed at construction and never
// mutated afterwards, so lookups need no locking.
type router struct {
	methods mapset.Set
}

// newRouter creates a router for the given methods, falling back to the
// default bundler method set when none are given.
func newRouter(methods ...string) *router {
	if len(methods) == 0 {
		methods = bundlerMethods
	}

	set := mapset.NewThreadUnsafeSet()
	for _, m := range methods {
		set.Add(m)
	}

	return &router{methods: set}
}

// routeToBundler returns true if the method belongs to the routed set.
func (r *router) routeToBundler(method string) bool {
	return r.methods.Contains(method)
}
