package twitter

import "testing"

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		base, op string
		args     []string
		want     string
	}{
		{DefaultAPIBase, "UserByUsername", []string{"jack"}, "https://api.twitter.com/2/users/by/username/jack"},
		{"http://localhost:9/2/", "UserTweets", []string{"12"}, "http://localhost:9/2/users/12/tweets"},
		{DefaultAPIBase, "Retweet", []string{"a/b"}, "https://api.twitter.com/2/users/a%2Fb/retweets"},
		{DefaultAPIBase, "CreateTweet", nil, "https://api.twitter.com/2/tweets"},
	}
	for _, tt := range tests {
		got, err := EndpointURL(tt.base, tt.op, tt.args...)
		if err != nil {
			t.Fatalf("%s: %v", tt.op, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.op, got, tt.want)
		}
	}

	if _, err := EndpointURL(DefaultAPIBase, "Bookmarks"); err == nil {
		t.Error("unknown operation should fail")
	}
}

func TestClampMaxResults(t *testing.T) {
	for in, want := range map[int]int{0: 5, 1: 5, 5: 5, 42: 42, 100: 100, 500: 100} {
		if got := clampMaxResults(in); got != want {
			t.Errorf("clampMaxResults(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestResolveEndpointCarriesMethod(t *testing.T) {
	want := map[string]string{
		"UserByUsername": "GET",
		"UserTweets":     "GET",
		"Retweet":        "POST",
		"CreateTweet":    "POST",
	}
	for op, method := range want {
		ep, _, err := resolveEndpoint(DefaultAPIBase, op, "1")
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if ep.Name != op || ep.Method != method {
			t.Errorf("%s resolved to %+v, want name %s method %s", op, ep, op, method)
		}
	}
}
