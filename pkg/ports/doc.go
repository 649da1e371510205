/*
Package ports defines the driven ports (interfaces) of the bomb risk widget.

These interfaces decouple the widget from rendering surfaces, randomness,
persistence and treatment catalogues, so the same gauge can run in a terminal,
behind HTTP or inside an MCP tool call.

# Key Interfaces

  - Surface: receives declarative views from a gauge and draws them.
  - RandomSource: the only source of randomness a gauge may use.
  - GaugeStore: persists widget snapshots between stateless requests.
  - TreatmentLoader: resolves named option sets (treatments) for a session.
  - DistributedLocker: coordinates access to one widget across replicas.
*/
package ports
