package http

import (
	"strings"

	xutil "CloudLab/pkg/util"
)

// SplitCSV splits a comma separated query value, dropping blanks.
func SplitCSV(s string) []string { return xutil.SplitCSV(strings.TrimSpace(s)) }
