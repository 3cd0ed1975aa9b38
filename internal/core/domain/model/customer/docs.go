// Package customer contains the Customer entity.
//
// Customers are identified by phone number at the API boundary: placing an
// order upserts the customer record, refreshing name and email when they
// are supplied. The entity itself carries a surrogate UUID used for foreign
// keys from sessions and orders.
package customer
