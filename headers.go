package twitter

// defaultUserAgent is filled in by ClientConfig.defaults when the config does not set one.
const defaultUserAgent = "go-rtbot/1.0"

// apiHeaders returns the headers for an authorized v2 request.
func apiHeaders(authorization, userAgent string, hasBody bool) map[string]string {
	h := map[string]string{
		"authorization":   authorization,
		"user-agent":      userAgent,
		"accept":          "application/json",
		"accept-encoding": "gzip, deflate, br",
	}
	if hasBody {
		h["content-type"] = "application/json"
	}
	return h
}

// apiHeaderOrder keeps the wire order stable across requests.
var apiHeaderOrder = []string{
	"authorization",
	"content-type",
	"user-agent",
	"accept",
	"accept-encoding",
}
