package logutil

// TruncateForLog shortens a string to maxLen characters for logging,
// appending "..." when anything was cut. Notification bodies can run long;
// log lines should not.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
