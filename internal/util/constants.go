package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	// ContextUserKey gin 上下文中保存 JWT Claims 的键
	ContextUserKey = "user"
	// TokenCookie 浏览器端保存 token 的 cookie 名
	TokenCookie = "token"
)
