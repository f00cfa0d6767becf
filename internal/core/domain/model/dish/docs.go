// Package dish holds the menu item as seen by the ordering core: a priced,
// possibly unavailable dish that order lines copy their price from.
package dish
