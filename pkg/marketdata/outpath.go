package marketdata

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// SanitizeToken converts an arbitrary string into a filesystem-safe path
// token: non-alphanumeric runs become single underscores, leading/trailing
// underscores are trimmed, and an empty result falls back to "NA".
func SanitizeToken(s string) string {
	s = strings.TrimSpace(s)
	s = nonAlphanumeric.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if s == "" {
		return "NA"
	}

	return s
}

// BuildOutputPath constructs the deterministic output location:
//
//	<root>/<TICKER>/tohlcv/<INTERVAL>/<START>_<END><ext>
//
// Every token is sanitized, so tickers like BTC-USD or ^GSPC map to stable
// directory names (BTC_USD, GSPC).
func BuildOutputPath(root, ticker string, interval Interval, startTag, endTag, ext string) string {
	return filepath.Join(
		root,
		SanitizeToken(ticker),
		"tohlcv",
		SanitizeToken(interval.String()),
		SanitizeToken(startTag)+"_"+SanitizeToken(endTag)+ext,
	)
}
