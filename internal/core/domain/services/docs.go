// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - PayoutPolicy: decides the earning amount for a delivered order
//   - DeliveryCompleter: applies the delivered transition to an order, credits the partner
//     and produces the earning record in one step
package services
