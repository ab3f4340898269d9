package domain

// Stats is the admin analytics rollup, recomputed from current store state
// on every call.
type Stats struct {
	ActiveCertificates   int64           `json:"active_certificates"`
	TotalWorkers         int64           `json:"total_workers"`
	PendingComplaints    int64           `json:"pending_complaints"`
	ComplaintsByCategory []CategoryCount `json:"complaints_by_category"`
}
