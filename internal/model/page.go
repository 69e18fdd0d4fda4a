package model

// Pagination describes the slice of a result set returned by a paged search.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

// SearchPage is one page of company search results.
type SearchPage struct {
	Results    []CompanyRecord `json:"results"`
	Pagination Pagination      `json:"pagination"`
}
