package twitter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// parseUserByUsername parses the v2 user lookup response.
// The API answers 200 with an errors array when the user does not exist.
func parseUserByUsername(body []byte) (*User, error) {
	var raw struct {
		Data *struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"data"`
		Errors []struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal UserByUsername: %w", err)
	}
	if raw.Data == nil || raw.Data.ID == "" {
		if len(raw.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, raw.Errors[0].Detail)
		}
		return nil, ErrUserNotFound
	}
	return &User{ID: raw.Data.ID, Username: raw.Data.Username, Name: raw.Data.Name}, nil
}

// parseUserTweets parses a user timeline page. Order is preserved: newest first.
func parseUserTweets(body []byte, authorID string) ([]*Tweet, error) {
	var raw struct {
		Data []struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			AuthorID  string `json:"author_id"`
			CreatedAt string `json:"created_at"`
		} `json:"data"`
		Meta struct {
			ResultCount int    `json:"result_count"`
			NewestID    string `json:"newest_id"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal tweet timeline: %w", err)
	}

	tweets := make([]*Tweet, 0, len(raw.Data))
	for _, d := range raw.Data {
		if d.ID == "" {
			slog.Debug("skip timeline entry without id")
			continue
		}
		t := &Tweet{ID: d.ID, AuthorID: authorID, Text: d.Text}
		if d.AuthorID != "" {
			t.AuthorID = d.AuthorID
		}
		if d.CreatedAt != "" {
			if ts, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
				t.CreatedAt = ts
			} else {
				slog.Debug("unparseable created_at", slog.String("id", d.ID), slog.String("value", d.CreatedAt))
			}
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

// parseCreateTweet extracts the new post ID from a create response.
func parseCreateTweet(body []byte) (string, error) {
	var raw struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("unmarshal CreateTweet: %w", err)
	}
	if raw.Data.ID == "" {
		return "", fmt.Errorf("CreateTweet returned empty tweet ID: %s", truncateBytes(body, 300))
	}
	return raw.Data.ID, nil
}

// parseRetweet reports the "retweeted" flag of a retweet response.
func parseRetweet(body []byte) (bool, error) {
	var raw struct {
		Data struct {
			Retweeted bool `json:"retweeted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return false, fmt.Errorf("unmarshal Retweet: %w", err)
	}
	return raw.Data.Retweeted, nil
}
