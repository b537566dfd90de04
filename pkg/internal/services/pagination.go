package services

import "github.com/spf13/viper"

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	OrderByDate   = "date"
	OrderByRating = "rating"
)

type Pagination struct {
	Page    int
	Limit   int
	Order   string
	OrderBy string
}

func (p Pagination) Direction() string {
	if p.Order == OrderAsc {
		return "ASC"
	}
	return "DESC"
}

func (p Pagination) Take() int {
	limit := p.Limit
	if limit <= 0 {
		limit = viper.GetInt("defaults.page_size")
		if limit <= 0 {
			limit = 20
		}
	}
	if max := viper.GetInt("defaults.max_page_size"); max > 0 && limit > max {
		limit = max
	}
	return limit
}

func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Take()
}
