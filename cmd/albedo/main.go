// Albedo - a WCAG colour contrast and colour vision audit tool
//
// Albedo checks colour pairs against the WCAG 2.x contrast thresholds,
// simulates colour vision deficiencies, and scans project trees for
// inaccessible colour combinations.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/albedo/internal/cli"
)

func main() {
	cli.Execute()
}
