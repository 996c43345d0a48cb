// Package numbering formats the human-readable sequential identifiers
// stamped onto documents, e.g. QT-2024-003.
package numbering

import "fmt"

// Document number prefixes.
const (
	PrefixQuote   = "QT"
	PrefixOrder   = "ORD"
	PrefixInvoice = "INV"
)

// Next derives the number for the next document of a type. It is strictly
// a function of the current collection size: callers must compute it at
// the instant of creation, holding the single-writer lock, from the
// authoritative collection.
func Next(prefix string, year int, collectionLen int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, collectionLen+1)
}
