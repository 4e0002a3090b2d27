package domain

// DashboardSummary aggregates the operational metrics shown on the admin
// dashboard. Counts degrade to zero when the store is unreachable; the
// dashboard renders regardless.
type DashboardSummary struct {
	TotalFiles     int      `json:"total_files"`
	TotalAlerts    int      `json:"total_alerts"`
	TotalAuditLogs int      `json:"total_audit_logs"`
	TotalStorageMB int64    `json:"total_storage_mb"`
	RecentFiles    []string `json:"recent_files"`
	RecentAlerts   []string `json:"recent_alerts"`
}
