package dto

// ListParams carries limit/offset pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
