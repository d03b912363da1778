// Package partition computes rectangular regions for weighted items inside a
// bounding box.
//
// Two strategies are provided, both pure functions of (items, box):
//
//   - [Grouped] splits the box into equal-width columns, one per non-empty
//     group, and stacks each group's items with heights proportional to their
//     weights.
//   - [Template] places items into named slots of a declarative row/column
//     template. Slots whose key has no matching item are omitted; the
//     remaining slots never reflow.
//
// Weights come from quantity strings such as "50 K" via [ParseQuantity],
// which never fails: unparseable input weighs zero.
//
// # Coordinates
//
// Rectangles use screen coordinates (Y grows downward) relative to the same
// origin as the input [Box]. Each [Rect] carries the index of the item it
// was computed for, so callers map results back into their own collections.
package partition
