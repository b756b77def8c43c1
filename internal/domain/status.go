package domain

import "strings"

// StockStatus classifies a product's stock relative to its reorder point and par level
type StockStatus string

const (
	StockStatusBelowPar StockStatus = "below_par"
	StockStatusAtPar    StockStatus = "at_par"
	StockStatusAbovePar StockStatus = "above_par"
)

// StockStatuses lists every status in severity order.
var StockStatuses = []StockStatus{StockStatusBelowPar, StockStatusAtPar, StockStatusAbovePar}

var stockStatusLabels = map[StockStatus]string{
	StockStatusBelowPar: "Below Par",
	StockStatusAtPar:    "At Par",
	StockStatusAbovePar: "Above Par",
}

var stockStatusCodes = map[string]StockStatus{
	"below_par": StockStatusBelowPar,
	"belowpar":  StockStatusBelowPar,
	"below par": StockStatusBelowPar,
	"at_par":    StockStatusAtPar,
	"atpar":     StockStatusAtPar,
	"at par":    StockStatusAtPar,
	"above_par": StockStatusAbovePar,
	"abovepar":  StockStatusAbovePar,
	"above par": StockStatusAbovePar,
}

// StockStatusLabel returns a human-readable label for a stock status.
func StockStatusLabel(status StockStatus) string {
	if label, ok := stockStatusLabels[status]; ok {
		return label
	}

	return "Unknown"
}

// ParseStockStatus returns the status for a given label or code (case-insensitive).
func ParseStockStatus(label string) (StockStatus, bool) {
	status, ok := stockStatusCodes[strings.ToLower(strings.TrimSpace(label))]

	return status, ok
}
