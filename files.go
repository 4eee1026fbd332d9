/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"strconv"
)

// humanReadableSize formats a byte count for log lines, in SI units.
func humanReadableSize(bytes int64) string {
	const unit = 1000

	if bytes < unit {
		return strconv.FormatInt(bytes, 10) + " B"
	}

	const prefixes = "kMGTPE"

	value := float64(bytes)
	i := -1
	for value >= unit && i < len(prefixes)-1 {
		value /= unit
		i++
	}

	return fmt.Sprintf("%.1f %cB", value, prefixes[i])
}
