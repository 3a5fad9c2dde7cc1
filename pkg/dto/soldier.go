package dto

// SoldierRequest is the admin create/update body. PhotoData is optional: an
// embedded data:image/... string, or empty to use the initials fallback.
type SoldierRequest struct {
	Name      string `json:"name" binding:"required"`
	Position  string `json:"position" binding:"required"`
	Sex       string `json:"sex" binding:"required,oneof=Male Female"`
	Age       int    `json:"age" binding:"required"`
	Status    string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	PhotoData string `json:"photo_data,omitempty"`
}

type SoldierResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Sex       string `json:"sex"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
	PhotoData string `json:"photo_data"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SoldierListResponse struct {
	Soldiers []SoldierResponse `json:"soldiers"`
	Total    int               `json:"total"`
}
