package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// GetUserByUsername resolves a handle to a user.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	ep, url, err := resolveEndpoint(c.cfg.APIBase, "UserByUsername", username)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, ep, url, map[string]string{"user.fields": "id,username"}, nil)
	if err != nil {
		return nil, fmt.Errorf("UserByUsername: %w", err)
	}
	return parseUserByUsername(body)
}

// GetUserTweets fetches one page of a user's own posts, excluding retweets and replies.
func (c *Client) GetUserTweets(ctx context.Context, userID string, opts TimelineOptions) ([]*Tweet, error) {
	ep, url, err := resolveEndpoint(c.cfg.APIBase, "UserTweets", userID)
	if err != nil {
		return nil, err
	}
	params := map[string]string{
		"exclude":      "retweets,replies",
		"max_results":  strconv.Itoa(clampMaxResults(opts.MaxResults)),
		"tweet.fields": "created_at",
	}
	if opts.SinceID != "" {
		params["since_id"] = opts.SinceID
	}
	body, err := c.do(ctx, ep, url, params, nil)
	if err != nil {
		return nil, fmt.Errorf("UserTweets: %w", err)
	}
	return parseUserTweets(body, userID)
}

// Retweet reposts tweetID as actorID.
func (c *Client) Retweet(ctx context.Context, actorID, tweetID string) error {
	ep, url, err := resolveEndpoint(c.cfg.APIBase, "Retweet", actorID)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, ep, url, nil, map[string]string{"tweet_id": tweetID})
	if err != nil {
		return fmt.Errorf("Retweet: %w", err)
	}
	ok, err := parseRetweet(body)
	if err != nil {
		return err
	}
	if !ok {
		slog.Warn("retweet not applied", slog.String("tweet_id", tweetID))
	}
	return nil
}

// Reply posts text as a reply to inReplyTo and returns the new post ID.
func (c *Client) Reply(ctx context.Context, text, inReplyTo string) (string, error) {
	ep, url, err := resolveEndpoint(c.cfg.APIBase, "CreateTweet")
	if err != nil {
		return "", err
	}
	payload := map[string]any{
		"text":  text,
		"reply": map[string]string{"in_reply_to_tweet_id": inReplyTo},
	}
	body, err := c.do(ctx, ep, url, nil, payload)
	if err != nil {
		return "", fmt.Errorf("CreateTweet: %w", err)
	}
	return parseCreateTweet(body)
}

func clampMaxResults(n int) int {
	return min(max(n, 5), 100)
}
