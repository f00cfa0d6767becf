// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root with lines, status, activity flag and schedule
//   - Line: a dish with quantity and a unit price frozen at order time
//   - Status: the lifecycle states and the timed transition table
//   - StatusChanged: the domain event raised on every status change
//
// Key business rules:
//   - Orders go ORDERED -> PREPARING -> IN_DELIVERY -> DELIVERED on timers of 10s, 15s and 20s
//   - Only ORDERED orders can be canceled, by their owner or a privileged actor
//   - Active PREPARING and IN_DELIVERY orders occupy the simultaneous order capacity
//   - Deferred orders wait inactive until their scheduled time and are then activated
package order
