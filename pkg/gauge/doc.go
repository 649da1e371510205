/*
Package gauge implements the interactive decision controls a widget hosts.

A gauge owns the live state of one task instance: the participant's selection,
the hidden randomness drawn at construction and the commit transition. It
renders itself declaratively into a ports.Surface and reports domain.Values to
the widget shell.

Two methods ship with the package:

  - Bomb: N opaque boxes, one hides a bomb. The participant picks how many to open.
  - Lottery: a multiple price list of paired lotteries with a switch point.

Custom methods can implement Gauge directly or assemble one from closures with Funcs.
*/
package gauge
