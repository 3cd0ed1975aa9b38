// Package order implements the order aggregate and its kitchen status
// state machine.
//
// An order is created against a dining session with a snapshot of catalog
// prices: each line item copies the menu item's unit price at placement
// time, and the order total is fixed at creation. Later catalog changes and
// status transitions never alter price fields. Orders are never edited in
// place; corrections happen by cancelling and re-placing.
//
// The status vocabulary is the versioned contract consumed by the kitchen
// display: pending, confirmed, preparing, almost_done, ready, served,
// cancelled, paid. Names are stored lowercase and parsed case-insensitively
// at the boundary.
package order
