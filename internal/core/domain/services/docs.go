// Package services provides domain services that make decisions spanning
// more than one aggregate of the food ordering system.
//
// The package includes:
//   - AdmissionController: decides whether one more order may start processing
//     without exceeding the simultaneous order capacity
package services
