/*
Package sqldataset stores and loads labeled rows on SQL databases.

Rows are kept on a single samples table with a REAL NULL column per
feature, an INTEGER column for the label and an id primary key that
keeps the insertion order. Undefined feature values are stored as NULL.

The package works through an Adapter, so the same functions serve any
database an adapter exists for.
*/
package sqldataset
