/*
Package domain contains the core domain models of the bomb risk task.

It defines the widget configuration, the values a gauge reports back to its host,
the declarative view a rendering surface draws, and the sentinel errors shared by
every layer. The package performs no I/O.

# Key Entities

  - Config: the immutable options a widget is initialized with.
  - Values / Outcome: what the host reads back; Outcome only exists after commit.
  - View: a declarative description of the box grid, the selection control and banners.
  - Snapshot: the restorable state of a live widget, used by stateless hosts.
*/
package domain
