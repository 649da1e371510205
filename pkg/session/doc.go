/*
Package session hosts live widgets for stateless front ends.

A widget is kept as a domain.Snapshot in a ports.GaugeStore between requests.
Every operation restores the widget from its snapshot under a per-widget lock
(optionally backed by a distributed lock), applies the change and saves the new
snapshot. The gauge is rebuilt from the stored seed, so its hidden draws never
change across requests.
*/
package session
