package sdk

// Reply is one assembled pipeline response.
type Reply struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
	Agent   string   `json:"agent"`
	Latency int64    `json:"latency"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

type chatRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}
