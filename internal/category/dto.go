package category

type CategoryResponse struct {
	Name         string `json:"name"`
	ExpenseCount int64  `json:"expense_count"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
