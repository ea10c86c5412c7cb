package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with caller identifiers.

// CallerLineType classifies a normalized Greek E.164 number into a
// low-cardinality label. This lets dashboards split traffic by line
// type without ever recording a phone number.
//
// Example:
//
//	CallerLineType("+306912345678")  // "mobile"
//	CallerLineType("+302101234567")  // "landline"
//	CallerLineType("")               // "unknown"
func CallerLineType(number string) string {
	if !strings.HasPrefix(number, "+30") || len(number) != 13 {
		return "unknown"
	}
	switch number[3] {
	case '6':
		return "mobile"
	case '2':
		return "landline"
	}
	return "unknown"
}

// Common operation types for calendar API metrics.
// Status and Service constants are defined in config.go.
const (
	OperationFreeBusy = "freebusy"
	OperationList     = "list"
	OperationGet      = "get"
	OperationInsert   = "insert"
	OperationPatch    = "patch"
	OperationDelete   = "delete"
)
