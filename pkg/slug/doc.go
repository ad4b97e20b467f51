// Package slug turns display names into URL path segments.
//
// Make lowercases the input, folds diacritics to ASCII (é becomes e, ß becomes ss),
// and collapses every run of other characters into a single separator. Leading
// and trailing separators are trimmed:
//
//	slug.Make("Other Frameworks")   // "other-frameworks"
//	slug.Make("Café & Restaurant")  // "cafe-restaurant"
//
// Options adjust the separator, cap the length in runes (truncation never leaves a
// dangling separator), append a random suffix, apply replacements before
// normalization or strip characters outright:
//
//	slug.Make(name, slug.MaxLength(128))
//	slug.Make("C++ & C#", slug.CustomReplace(map[string]string{"++": "pp", "#": "sharp"}))
//	slug.Make("draft", slug.WithSuffix(6)) // "draft-x7k2p9"
//
// The catalog derives category slugs with Make, so two names that fold to the
// same slug collide and only the first is stored.
package slug
