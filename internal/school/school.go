package school

// School represents a single school managed by the service
type School struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
