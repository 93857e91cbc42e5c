package httpserver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Query parameters that carry credentials.
var secretParams = []string{"token"}

// accessLogFormatter is gin's default line with credentials masked.
func accessLogFormatter(param gin.LogFormatterParams) string {
	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v\n%s",
		param.TimeStamp.Format("2006/01/02 - 15:04:05"),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		redactQuery(param.Path),
		param.ErrorMessage,
	)
}

// redactQuery replaces the values of secret query parameters.
func redactQuery(path string) string {
	base, raw, ok := strings.Cut(path, "?")
	if !ok {
		return path
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return base + "?REDACTED"
	}
	changed := false
	for _, key := range secretParams {
		if _, present := q[key]; present {
			q.Set(key, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return path
	}
	return base + "?" + q.Encode()
}
