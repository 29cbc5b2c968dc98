// Package main hosts the tubescribe CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into transcript
// service calls: metadata lookups, subtitle track listings, transcript
// downloads, cache and scratch maintenance, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
