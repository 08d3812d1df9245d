package ingest

import (
	"math"
	"strings"
)

// Limit-price ratios, chosen by six-digit code prefix or security name/
// prefix token, grounded in the original gateway's DeduceLimitRatioFast:
// ChiNext/STAR-market codes (prefix "30"/"68") get the wide 20% band;
// special-treatment ("ST") securities get the narrow 5% band; everything
// else gets the standard 10% band.
const (
	LimitRatioGrowthBoard = 0.20
	LimitRatioST          = 0.05
	LimitRatioStandard    = 0.10
)

// DeduceLimitRatio chooses the fallback limit-price ratio for a symbol,
// given its six-digit numeric code (as it appears in the canonical 16-byte
// form, before the '.') and any vendor text that might carry the "ST"
// special-treatment marker (vendor prefix or display name).
func DeduceLimitRatio(canonical [16]byte, vendorText string) float64 {
	if canonical[0] == '3' && canonical[1] == '0' {
		return LimitRatioGrowthBoard
	}
	if canonical[0] == '6' && canonical[1] == '8' {
		return LimitRatioGrowthBoard
	}
	if strings.Contains(strings.ToUpper(vendorText), "ST") {
		return LimitRatioST
	}
	return LimitRatioStandard
}

// LimitFallback computes the upper/lower limit prices (x10000 units) for a
// previous close (x10000 units) and a ratio, rounding to the nearest cent
// before re-scaling to x10000, matching the original gateway's
// BuildLimitFallback. The lower bound is clamped to zero.
func LimitFallback(preCloseX10000 int64, ratio float64) (upperX10000, lowerX10000 int64) {
	if preCloseX10000 <= 0 || ratio <= 0 {
		return 0, 0
	}
	preClose := float64(preCloseX10000) / 10000.0

	up := math.Round(preClose*(1.0+ratio)*100) / 100
	down := math.Round(preClose*(1.0-ratio)*100) / 100
	if down < 0 {
		down = 0
	}

	return int64(math.Round(up * 10000)), int64(math.Round(down * 10000))
}

// ApplyLimitFallback fills high/low limit fields that the vendor reported
// as <= 0 with the derived fallback, leaving vendor-reported values
// otherwise untouched.
func ApplyLimitFallback(preCloseX10000 int64, canonical [16]byte, vendorText string, highLimitX10000, lowLimitX10000 *int64) {
	if *highLimitX10000 > 0 && *lowLimitX10000 > 0 {
		return
	}
	ratio := DeduceLimitRatio(canonical, vendorText)
	up, down := LimitFallback(preCloseX10000, ratio)
	if *highLimitX10000 <= 0 {
		*highLimitX10000 = up
	}
	if *lowLimitX10000 <= 0 {
		*lowLimitX10000 = down
	}
}
