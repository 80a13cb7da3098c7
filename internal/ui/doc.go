// Package ui prints human-facing progress lines and prompts.
//
// Structured diagnostics go through log/slog; this package only covers the
// short interactive surface: "Fetching recipe 'x'... Done" progress lines
// and yes/no prompts.
package ui
