package amalgam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInclude(t *testing.T) {
	c := Classify(`#include "os/version.hpp"`)
	assert.Equal(t, LineInclude, c.Kind)
	assert.Equal(t, "os/version.hpp", c.Path)
}

func TestClassifyFileTag(t *testing.T) {
	c := Classify("/** @file os/kernel.hpp")
	assert.Equal(t, LineFileTag, c.Kind)
}

func TestClassifyMalformedIncludeStaysPlain(t *testing.T) {
	// Lines that look include-ish but do not match the exact quoted form are
	// ordinary text, never an error.
	for _, line := range []string{
		`#include <string>`,
		`#include "os/version.hpp" // trailing comment`,
		`#include "unterminated`,
		`    #include "indented.hpp"`,
		`// #include "commented.hpp"`,
	} {
		assert.Equal(t, LinePlain, Classify(line).Kind, "line: %s", line)
	}
}

func TestClassifyPlain(t *testing.T) {
	assert.Equal(t, LinePlain, Classify("namespace os {").Kind)
	assert.Equal(t, LinePlain, Classify("").Kind)
}
