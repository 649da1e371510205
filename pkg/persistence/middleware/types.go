// Package middleware decorates snapshot stores.
package middleware

import "github.com/aretw0/bombrisk/pkg/ports"

// Middleware allows wrapping a GaugeStore to add behavior.
type Middleware func(ports.GaugeStore) ports.GaugeStore

// Chain applies mws to store; the first middleware is the outermost.
func Chain(store ports.GaugeStore, mws ...Middleware) ports.GaugeStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
