// Package events turns order domain events into broker messages and hands
// the events of committed aggregates to an ports.OrderEventPublisher.
//
// The package includes:
//   - StatusChangedMessage: the JSON payload shared by the Kafka and RabbitMQ publishers
//   - LogPublisher: a publisher that only logs, used when no broker is configured
//   - DispatchTracked: the post-commit step of the unit of work implementations
package events
