// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcodagnone/wardcheck/session"
)

// textPresenter renders a session on a terminal.
type textPresenter struct {
	w io.Writer
}

var statusIcons = map[session.StatusKind]string{
	session.StatusLoading: "⏳",
	session.StatusSuccess: "✅",
	session.StatusWarning: "⚠️",
	session.StatusError:   "❌",
}

func (p *textPresenter) ShowStatus(s session.Status) {
	fmt.Fprintf(p.w, "%s %s\n", statusIcons[s.Kind], s.Message)
}

func (p *textPresenter) ShowResult(r session.Result) {
	fmt.Fprintf(p.w, "\n%s\n%s\n", r.Title, strings.Repeat("─", len([]rune(r.Title))))

	for _, line := range r.Lines {
		fmt.Fprintf(p.w, "  %s\n", line)
	}

	for _, line := range r.Instructions {
		fmt.Fprintf(p.w, "  • %s\n", line)
	}

	fmt.Fprintln(p.w)
}

func (p *textPresenter) ShowMarker(m session.Marker) {
	fmt.Fprintf(p.w, "📍 %s (%s) %s\n", m.Point.Format(), m.Label, m.Title)
}

func (p *textPresenter) ShowMap(v session.MapView) {
	for _, line := range v.Instructions {
		fmt.Fprintf(p.w, "  %s\n", line)
	}
}

func (p *textPresenter) Confirm(message string) {
	fmt.Fprintf(p.w, "\n%s\n", message)
}
