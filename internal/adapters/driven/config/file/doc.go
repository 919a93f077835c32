// Package file provides file-based implementations of driven port interfaces.
// These adapters read the tap's input files from the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML or JSON configuration file
//   - LoadState / LoadCatalog: the --state and --properties inputs
package file
