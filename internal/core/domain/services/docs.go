// Package services contains domain services: operations that span
// multiple aggregates and therefore do not belong to any single one.
//
// BillCalculator turns a session's orders into an invoice. It is pure
// computation over already-loaded aggregates; persistence and transport
// stay in the application and adapter layers.
package services
