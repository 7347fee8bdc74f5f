package dto

type Filter struct {
	Limit    int    `query:"limit"`
	Category string `query:"category"`
}
