package twitter

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultAPIBase is the X API v2 root.
const DefaultAPIBase = "https://api.twitter.com/2"

// Endpoint holds the method and path template of one API operation.
type Endpoint struct {
	Name   string
	Method string
	Path   string // fmt template; arguments are path-escaped
}

// Endpoints maps operation names to their REST paths.
var Endpoints = map[string]Endpoint{
	"UserByUsername": {Name: "UserByUsername", Method: "GET", Path: "/users/by/username/%s"},
	"UserTweets":     {Name: "UserTweets", Method: "GET", Path: "/users/%s/tweets"},
	"Retweet":        {Name: "Retweet", Method: "POST", Path: "/users/%s/retweets"},
	"CreateTweet":    {Name: "CreateTweet", Method: "POST", Path: "/tweets"},
}

// EndpointURL returns the absolute URL for a named operation, or an error if unknown.
func EndpointURL(base, operation string, args ...string) (string, error) {
	_, u, err := resolveEndpoint(base, operation, args...)
	return u, err
}

// resolveEndpoint returns the operation's Endpoint together with its absolute URL.
func resolveEndpoint(base, operation string, args ...string) (Endpoint, string, error) {
	ep, ok := Endpoints[operation]
	if !ok {
		return Endpoint{}, "", fmt.Errorf("unknown operation: %s", operation)
	}
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return ep, strings.TrimRight(base, "/") + fmt.Sprintf(ep.Path, escaped...), nil
}
