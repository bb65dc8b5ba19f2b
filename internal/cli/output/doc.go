// Package output renders microdog-cli results as table, JSON or YAML.
//
// Table output of a struct lists FIELD/VALUE rows. Fields tagged
// `table:"wide"` (such as the 200-byte memory image) only appear with
// --wide.
package output
