// Package store persists linked companion content in SQLite.
//
// Four content tables (reports, marketing assets, covers, landing pages) hang
// off an entities header row that also carries the pipeline status field. No
// table has a dedicated foreign key back to the catalog: rows produced by a
// precanned import are identified by the tag JSON serialized into their
// metadata column, and prior rows from the same package are found by matching
// on the serialized key marker. That keeps the metadata column free text for
// other writers while still letting imports replace their own output.
//
// Replace operations run delete+insert inside a single transaction per
// category; there is deliberately no transaction spanning categories. Schema
// changes bump the version in schema.go; users clear the database to adopt
// the new schema.
package store
