package dto

// UnreadResponse reports the number of tickets not yet opened.
type UnreadResponse struct {
	Count int `json:"count"`
}

// ToggleRequest carries where to go after toggling the menu.
type ToggleRequest struct {
	ReturnTo string `json:"return_to" form:"return_to"`
}

// MenuResponse reports the menu state to API callers.
type MenuResponse struct {
	Open bool `json:"open"`
}
