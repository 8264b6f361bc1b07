package audit

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type ListRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize clamps the limit to [1, MaxListLimit] and the offset to >= 0.
func (r *ListRequest) Normalize() {
	if r.Limit <= 0 {
		r.Limit = DefaultListLimit
	}
	if r.Limit > MaxListLimit {
		r.Limit = MaxListLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

type EntryResponse struct {
	ID        int64  `json:"id"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Username  string `json:"username"`
	IP        string `json:"ip,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ListResponse struct {
	TotalCount int64           `json:"total_count"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
	Entries    []EntryResponse `json:"entries"`
}
