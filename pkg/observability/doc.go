/*
Package observability turns widget lifecycle events into logs and metrics.

Both LoggingHooks and Metrics.Hooks return domain.LifecycleHooks; hosts combine
them with domain.CombineHooks and pass the result to bombrisk.WithLifecycleHooks.
*/
package observability
