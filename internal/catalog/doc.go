// Package catalog holds the bookmarking domain: categories, the pages filed
// under them, and the Repository contract the storage drivers implement.
//
// Category slugs are derived from names with pkg/slug, so "Random Category String"
// is served at /category/random-category-string. View and like counters never go
// below zero.
//
// Populate seeds a store with the starter data set:
//
//	cats, err := catalog.Populate(ctx, store, catalog.DefaultSeed,
//		catalog.WithPopulateLogger(log),
//	)
package catalog
