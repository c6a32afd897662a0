package respond

import (
	"regexp"
)

var (
	// Authorization ヘッダーがエラーに紛れ込んだ場合
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`)
	// 署名付き JWT (header.payload.signature)
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
	// DSN 内のパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
	// key=value 形式の DSN パスワード
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)\S+`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
