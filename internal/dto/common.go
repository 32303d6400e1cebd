package dto

// PaginationParams defines the common limit/offset query parameters.
type PaginationParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
