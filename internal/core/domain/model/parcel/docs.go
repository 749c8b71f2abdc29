// Package parcel models the lifecycle of a physical parcel from the moment
// it is expected at a warehouse until it is delivered, returned or disposed.
//
// Every status transition is validated against an explicit adjacency table;
// no transition exists implicitly. Accepted transitions append one immutable
// row to the parcel's status history, which is the audit trail and is never
// rewritten. The current status is a projection of that history.
package parcel
