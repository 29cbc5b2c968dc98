package main

import (
	"fmt"
	"net/url"
	"strings"
)

// resolveVideoID accepts a bare video ID or any common YouTube URL shape and
// returns the video ID.
func resolveVideoID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("video ID or URL is required")
	}
	if !strings.Contains(arg, "/") && !strings.Contains(arg, ":") {
		return arg, nil
	}

	parsed, err := url.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("parse video URL: %w", err)
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	if host != "youtube.com" && host != "m.youtube.com" && host != "youtu.be" {
		return "", fmt.Errorf("not a YouTube URL: %s", arg)
	}

	if v := parsed.Query().Get("v"); v != "" {
		return v, nil
	}

	// youtu.be/<id>, /shorts/<id>, /embed/<id>, /live/<id>
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) > 0 {
		if id := segments[len(segments)-1]; id != "" && id != "watch" {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not extract a video ID from %s", arg)
}

// formatSeconds renders a duration in seconds as H:MM:SS, dropping the hour
// part for short videos.
func formatSeconds(total int64) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
