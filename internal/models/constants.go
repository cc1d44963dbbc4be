package models

// Labels of the column appended to the header row.
const (
	HeaderTransactionCategory = "Transaction Category"
	HeaderAICategory          = "AI Category"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
