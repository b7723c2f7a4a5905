package consts

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)
