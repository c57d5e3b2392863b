package category

// Category is a free-text expense category as used by one user.
type Category struct {
	Name         string
	ExpenseCount int64
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:         c.Name,
		ExpenseCount: c.ExpenseCount,
	}
}
