package dto

// SearchRequest carries the agent list filter.
type SearchRequest struct {
	Query string `json:"q" form:"q"`
}
