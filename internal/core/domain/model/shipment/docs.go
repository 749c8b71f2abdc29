// Package shipment models a customer-initiated consolidation of ready
// parcels into one outbound shipment: its quoting, payment and operational
// lifecycle.
//
// The status machine is explicit: Quoted is only reachable through a rate
// quote, Paid only through billing reconciliation, and cancellation after
// payment is modeled as a distinct Refunded exit so the invoice stays an
// immutable financial record.
package shipment
