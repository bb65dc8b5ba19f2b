// Package confloader loads emulator configuration with koanf.
//
// Sources are merged in priority order, later overriding earlier:
//
//  1. Defaults (the target struct as passed in)
//  2. YAML configuration file
//  3. Environment variables (MICRODOG_ prefix)
//
// Watcher reports writes to the configuration file so that runtime
// settings such as the log level can be re-applied without a restart.
package confloader
