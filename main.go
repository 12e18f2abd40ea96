// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/wardcheck/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
