// Package services contains stateless domain services operating across
// aggregates. The rate calculator is the only one: a pure pricing function
// used both for ranking available services and for the authoritative quote
// persisted onto a shipment.
package services
