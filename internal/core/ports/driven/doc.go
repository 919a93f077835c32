// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CredentialProvider: Cached and interactive OAuth credential acquisition
//   - SpreadsheetService: Spreadsheet listing, tab metadata and cell ranges
//   - SpreadsheetServiceFactory: Builds an authorised SpreadsheetService
//   - RunStore: Run history persistence
//   - ConfigStore: Tap configuration file access
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
