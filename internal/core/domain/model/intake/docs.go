// Package intake models the warehouse intake pipeline: incoming courier
// batches and the tracking numbers scanned within them.
//
// A Batch is the aggregate root for one courier-delivery scanning session.
// It owns its ScannedItems and is the single authority on duplicate
// detection: scanning a tracking number twice within one batch records a
// duplicate marker and never creates a second live item. Client-reported
// scan outcomes are never trusted for billing-relevant decisions.
//
// Assignment of scanned items to a customer is the sole admission gate before
// a parcel can be registered from an item.
package intake
