// Package messaging publishes events to a message broker.
//
// Use cases depend on Publisher and never on a concrete broker. The driver is
// picked at startup from configuration: NATS, NSQ, Kafka, Google Pub/Sub, or
// an in-memory publisher for local runs and tests.
package messaging
