package amalgam

import "regexp"

// LineKind tags the role a single input line plays in the transform.
type LineKind int

const (
	// LinePlain is any line the pipeline copies through untouched.
	LinePlain LineKind = iota
	// LineInclude is a local include reference: the include directive, one
	// space, and a double-quoted relative path with nothing else on the line.
	LineInclude
	// LineFileTag is a doc-comment file metadata marker.
	LineFileTag
)

// Classified is one input line with its recognized role. Path is set only
// for LineInclude.
type Classified struct {
	Kind LineKind
	Text string
	Path string
}

// includeRe matches the exact three-part quoted form. Lines that merely look
// like an include (extra tokens, missing quote) stay plain text on purpose.
var includeRe = regexp.MustCompile(`^#include "([^"]*)"$`)

const fileTagPrefix = "/** @file"

// Classify tags a single line. The zero classification is a plain line.
func Classify(line string) Classified {
	if m := includeRe.FindStringSubmatch(line); m != nil {
		return Classified{Kind: LineInclude, Text: line, Path: m[1]}
	}
	if len(line) >= len(fileTagPrefix) && line[:len(fileTagPrefix)] == fileTagPrefix {
		return Classified{Kind: LineFileTag, Text: line}
	}
	return Classified{Kind: LinePlain, Text: line}
}
