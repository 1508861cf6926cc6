package twitter

import (
	"errors"
	"testing"
	"time"
)

func TestParseUserByUsername(t *testing.T) {
	body := `{"data":{"id":"12345","username":"testuser","name":"Test User"}}`

	user, err := parseUserByUsername([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "12345" {
		t.Fatalf("expected ID 12345, got %s", user.ID)
	}
	if user.Username != "testuser" {
		t.Fatalf("expected username testuser, got %s", user.Username)
	}
	if user.Name != "Test User" {
		t.Fatalf("expected name Test User, got %s", user.Name)
	}
}

func TestParseUserByUsername_NotFound(t *testing.T) {
	body := `{
		"errors": [{
			"value": "nobody_here",
			"detail": "Could not find user with username: [nobody_here].",
			"title": "Not Found Error",
			"resource_type": "user",
			"parameter": "username"
		}]
	}`

	_, err := parseUserByUsername([]byte(body))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestParseUserTweets(t *testing.T) {
	body := `{
		"data": [
			{"id": "200", "text": "newest", "created_at": "2024-01-02T15:04:05.000Z"},
			{"id": "150", "text": "older", "created_at": "2024-01-02T15:00:00.000Z", "author_id": "777"},
			{"id": "", "text": "broken"}
		],
		"meta": {"result_count": 3, "newest_id": "200"}
	}`

	tweets, err := parseUserTweets([]byte(body), "999")
	if err != nil {
		t.Fatal(err)
	}
	if len(tweets) != 2 {
		t.Fatalf("expected 2 tweets, got %d", len(tweets))
	}
	if tweets[0].ID != "200" || tweets[1].ID != "150" {
		t.Fatalf("unexpected order: %s, %s", tweets[0].ID, tweets[1].ID)
	}
	if tweets[0].AuthorID != "999" {
		t.Fatalf("expected default author 999, got %s", tweets[0].AuthorID)
	}
	if tweets[1].AuthorID != "777" {
		t.Fatalf("expected author 777, got %s", tweets[1].AuthorID)
	}
	want := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if !tweets[0].CreatedAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, tweets[0].CreatedAt)
	}
}

func TestParseUserTweets_Empty(t *testing.T) {
	tweets, err := parseUserTweets([]byte(`{"meta":{"result_count":0}}`), "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tweets) != 0 {
		t.Fatalf("expected no tweets, got %d", len(tweets))
	}
}

func TestParseCreateTweet(t *testing.T) {
	id, err := parseCreateTweet([]byte(`{"data":{"id":"555","text":"hi"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if id != "555" {
		t.Fatalf("expected 555, got %s", id)
	}

	if _, err := parseCreateTweet([]byte(`{"data":{}}`)); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestParseRetweet(t *testing.T) {
	ok, err := parseRetweet([]byte(`{"data":{"retweeted":true}}`))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected retweeted")
	}
}
