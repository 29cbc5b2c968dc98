// Package textutil provides small text helpers shared by the cache and CLI
// layers: filesystem-safe name sanitization and display truncation.
package textutil
