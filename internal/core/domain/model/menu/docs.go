// Package menu contains the read-only MenuItem entity.
//
// The ordering flow treats the menu as a catalog it prices against: items
// are looked up by id when an order is placed, and the catalog price at
// that moment is snapshotted onto the order line. Menu authoring is out of
// scope; records are seeded directly in the database.
package menu
