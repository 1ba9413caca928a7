package field

// ListFieldsRequest carries the customer catalog filters.
type ListFieldsRequest struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Location string `form:"location"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// SetDefaults normalizes pagination parameters.
func (r *ListFieldsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 10
	}
}

// PaginationMeta mirrors the response pagination block.
type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

// ListFieldsResponse is the paginated catalog payload.
type ListFieldsResponse struct {
	Fields     []Field        `json:"fields"`
	Pagination PaginationMeta `json:"pagination"`
}
