package dto

// HealthResponse reports database connectivity. Error is set only when the
// probe failed.
type HealthResponse struct {
	DBStatus   bool   `json:"db_status"`
	MathResult *int   `json:"math_result,omitempty"`
	Error      string `json:"error,omitempty"`
}
