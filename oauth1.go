package twitter

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OAuth1Credentials is the consumer + access token set used for HMAC-SHA1 signing.
type OAuth1Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Validate reports every missing field at once.
func (c OAuth1Credentials) Validate() error {
	var missing []string
	if c.ConsumerKey == "" {
		missing = append(missing, "consumer key")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "consumer secret")
	}
	if c.AccessToken == "" {
		missing = append(missing, "access token")
	}
	if c.AccessTokenSecret == "" {
		missing = append(missing, "access token secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// OAuth1Signer signs requests per OAuth 1.0a with HMAC-SHA1.
type OAuth1Signer struct {
	creds OAuth1Credentials
	nonce func() (string, error)
	now   func() time.Time
}

// NewOAuth1Signer validates creds and returns a signer using crypto/rand nonces and the wall clock.
func NewOAuth1Signer(creds OAuth1Credentials) (*OAuth1Signer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &OAuth1Signer{creds: creds, nonce: generateNonce, now: time.Now}, nil
}

// Authorize implements Authorizer. Only oauth_* fields appear in the header;
// params take part in the signature but are not repeated there.
func (s *OAuth1Signer) Authorize(method, rawURL string, params map[string]string) (string, error) {
	if err := s.creds.Validate(); err != nil {
		return "", err
	}
	nonce, err := s.nonce()
	if err != nil {
		return "", err
	}
	ts := strconv.FormatInt(s.now().Unix(), 10)
	header, _ := s.sign(method, rawURL, params, nonce, ts)
	return header, nil
}

// sign returns the Authorization header and the signature base string.
func (s *OAuth1Signer) sign(method, rawURL string, params map[string]string, nonce, timestamp string) (string, string) {
	oauth := map[string]string{
		"oauth_consumer_key":     s.creds.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        timestamp,
		"oauth_token":            s.creds.AccessToken,
		"oauth_version":          "1.0",
	}

	all := make(map[string]string, len(params)+len(oauth))
	for k, v := range params {
		all[k] = v
	}
	for k, v := range oauth {
		all[k] = v
	}

	base := signatureBaseString(method, rawURL, all)
	key := PercentEncode(s.creds.ConsumerSecret) + "&" + PercentEncode(s.creds.AccessTokenSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	oauth["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return "OAuth " + joinSorted(oauth, ", ", func(k, v string) string {
		return k + `="` + v + `"`
	}), base
}

// signatureBaseString builds METHOD&enc(url without query)&enc(sorted params).
func signatureBaseString(method, rawURL string, params map[string]string) string {
	baseURL, _, _ := strings.Cut(rawURL, "?")
	paramStr := joinSorted(params, "&", func(k, v string) string {
		return k + "=" + v
	})
	return strings.ToUpper(method) + "&" + PercentEncode(baseURL) + "&" + PercentEncode(paramStr)
}

// joinSorted encodes every key and value, sorts by encoded key and joins the formatted pairs.
func joinSorted(m map[string]string, sep string, format func(k, v string) string) string {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, pair{PercentEncode(k), PercentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = format(p.k, p.v)
	}
	return strings.Join(parts, sep)
}

// PercentEncode escapes s per RFC 3986: only ALPHA, DIGIT, '-', '.', '_' and '~'
// pass through, so ! * ( ) ' are always escaped. Hex digits are upper-case.
func PercentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
