// Package kernel provides the shared value objects of the food ordering domain.
//
// The package includes:
//   - UUID: identifier of orders, dishes, users and queue entries
//   - Money: non-negative decimal amount used for frozen dish prices and order totals
//
// Both types are immutable. Their zero values are invalid and are rejected by
// Validate, so aggregates can detect values that skipped a constructor.
package kernel
