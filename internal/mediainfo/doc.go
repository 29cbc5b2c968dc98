// Package mediainfo normalizes raw metadata dumps into the view the rest of
// the pipeline consumes: scalar fields with explicit defaults and a single
// deterministic subtitle track list where manual captions win over automatic
// ones.
package mediainfo
