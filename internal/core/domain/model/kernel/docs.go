// Package kernel contains the shared value objects of the forwarding domain:
// identifiers, money, weights and dimensions. Value objects are immutable,
// validated at construction, and safe for concurrent use.
package kernel
