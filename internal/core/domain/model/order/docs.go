// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root that owns the customer details, the partner assignment
//     and the lifecycle timestamps
//   - Status: a forward-only state machine over the persisted status names
//   - State: the flat persisted form used by record stores
//
// Key business rules:
//   - Status follows confirmed -> accepted -> picked_up -> [en_route ->] delivered
//   - Confirmed and accepted orders may be declined; declined is terminal
//   - The delivery partner is assigned once, on accept, and never changes
//   - Only the assigned partner may deliver an order
//   - Only delivered orders are archived
//
// Rejected transitions return errs.TransitionRejectedError and leave the order unchanged.
package order
