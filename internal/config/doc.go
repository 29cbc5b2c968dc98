// Package config loads, normalizes, and validates tubescribe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TUBESCRIBE_YTDLP and TUBESCRIBE_BROWSER. The Config type centralizes every
// knob the CLI and pipeline need: cache and scratch directories, the yt-dlp
// cookie policy, journal location, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
