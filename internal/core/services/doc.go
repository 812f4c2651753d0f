// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend on domain types, ports and the logger. SettingsService
// also reads environment overrides through cleanenv.
package services
