package main

import (
	"path/filepath"
	"regexp"
	"strings"
)

type mode int

const (
	modeUnknown mode = iota
	modeImport
	modeExport
	modeVerify
)

func (m mode) String() string {
	switch m {
	case modeImport:
		return "import"
	case modeExport:
		return "export"
	case modeVerify:
		return "verify"
	default:
		return "unknown"
	}
}

const convertedSuffix = "_converted"

// objectNamePattern matches names of single-object files, which end in an
// underscore and eight hex digits.
var objectNamePattern = regexp.MustCompile(`.+_[0-9a-fA-F]{8}`)

// detectMode picks the conversion direction from the input extension.
func detectMode(input string) mode {
	if strings.EqualFold(filepath.Ext(input), ".xml") {
		return modeImport
	}

	return modeExport
}

// importOutputPath derives the binary file written for an XML input: the
// input without its extension and "_converted" suffix, given ".obj" or
// ".lib" when no extension remains.
func importOutputPath(input string) string {
	out := strings.TrimSuffix(input, filepath.Ext(input))
	out = strings.TrimSuffix(out, convertedSuffix)

	if filepath.Ext(out) == "" {
		if objectNamePattern.MatchString(filepath.Base(out)) {
			out += ".obj"
		} else {
			out += ".lib"
		}
	}

	return out
}

// exportOutputPath derives the XML file written for a binary input.
func exportOutputPath(input string) string {
	return input + ".xml"
}
