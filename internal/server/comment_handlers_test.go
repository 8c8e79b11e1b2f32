package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"soulverse/internal/models"
	"soulverse/internal/notifications"
	"soulverse/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createComment(t *testing.T, body map[string]interface{}) models.Comment {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/comments", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c models.Comment
	decodeBody(t, resp, &c)
	return c
}

func (e *testEnv) listComments(t *testing.T, query string) []models.Comment {
	t.Helper()
	resp := e.do(t, http.MethodGet, "/comments"+query, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []models.Comment
	decodeBody(t, resp, &out)
	return out
}

func titles(comments []models.Comment) []string {
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Title)
	}
	return out
}

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t, nil)
	author := testutil.CreateProfile(t, env.db, "author")

	t.Run("Success", func(t *testing.T) {
		c := env.createComment(t, map[string]interface{}{
			"userId":          author.ID,
			"title":           "<i>INFP</i> vibes",
			"text":            "Always dreaming",
			"mbtiPersonality": "INFP",
		})
		assert.NotZero(t, c.ID)
		assert.Equal(t, author.ID, c.UserID)
		assert.Equal(t, "INFP vibes", c.Title)
		assert.Equal(t, 0, c.LikesCount)
		require.NotNil(t, c.Personalities.MBTI)
		assert.Equal(t, "INFP", *c.Personalities.MBTI)
		assert.Nil(t, c.Personalities.Enneagram)
		assert.Nil(t, c.Personalities.Zodiac)
	})

	t.Run("Encoded Markup Stays Encoded", func(t *testing.T) {
		c := env.createComment(t, map[string]interface{}{
			"userId":            author.ID,
			"title":             "Tom &amp; Jerry's &lt;b&gt;",
			"text":              "&lt;script&gt;alert(1)&lt;/script&gt;",
			"zodiacPersonality": "Leo",
		})
		assert.Equal(t, "Tom & Jerry's &lt;b&gt;", c.Title)
		assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", c.Text)

		for _, listed := range env.listComments(t, "?personalities=zodiac") {
			assert.NotContains(t, listed.Text, "<script")
			assert.NotContains(t, listed.Title, "<b>")
		}
	})

	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{
			name:    "No Personalities",
			body:    map[string]interface{}{"userId": author.ID, "title": "t", "text": "x"},
			message: "No personalities specified",
		},
		{
			name:    "Unknown User",
			body:    map[string]interface{}{"userId": 999, "title": "t", "text": "x", "zodiacPersonality": "Leo"},
			message: "User not found",
		},
		{
			name:    "Missing Title",
			body:    map[string]interface{}{"userId": author.ID, "text": "x", "zodiacPersonality": "Leo"},
			message: "title is required",
		},
		{
			name:    "Markup Only Text",
			body:    map[string]interface{}{"userId": author.ID, "title": "t", "text": "<script></script>", "zodiacPersonality": "Leo"},
			message: "text is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/comments", tt.body)
			assertErrorBody(t, resp, http.StatusBadRequest, tt.message)
		})
	}

	t.Run("Malformed Body", func(t *testing.T) {
		resp := env.doRaw(t, http.MethodPost, "/comments", `{"userId":`)
		assertErrorBody(t, resp, http.StatusBadRequest, "Invalid request body")
	})
}

func TestLikeAndUnlike(t *testing.T) {
	env := newTestEnv(t, nil)
	author := testutil.CreateProfile(t, env.db, "author")
	fan := testutil.CreateProfile(t, env.db, "fan")
	c := env.createComment(t, map[string]interface{}{
		"userId": author.ID, "title": "t", "text": "x", "enneagramPersonality": "4w5",
	})
	likePath := fmt.Sprintf("/comments/%d/like", c.ID)
	unlikePath := fmt.Sprintf("/comments/%d/unlike", c.ID)

	resp := env.do(t, http.MethodPut, unlikePath, map[string]interface{}{"userId": fan.ID})
	assertErrorBody(t, resp, http.StatusBadRequest, "User has not liked this comment")

	resp = env.do(t, http.MethodPut, likePath, map[string]interface{}{"userId": fan.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var like models.CommentLike
	decodeBody(t, resp, &like)
	assert.Equal(t, fan.ID, like.UserID)
	assert.Equal(t, c.ID, like.CommentID)

	resp = env.do(t, http.MethodPut, likePath, map[string]interface{}{"userId": fan.ID})
	assertErrorBody(t, resp, http.StatusBadRequest, "User already liked this comment")

	listed := env.listComments(t, "")
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].LikesCount)

	resp = env.do(t, http.MethodPut, unlikePath, map[string]interface{}{"userId": fan.ID})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	listed = env.listComments(t, "")
	require.Len(t, listed, 1)
	assert.Equal(t, 0, listed[0].LikesCount)

	resp = env.do(t, http.MethodPut, unlikePath, map[string]interface{}{"userId": fan.ID})
	assertErrorBody(t, resp, http.StatusBadRequest, "User has not liked this comment")
}

func TestLike_CheckOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	author := testutil.CreateProfile(t, env.db, "author")
	c := env.createComment(t, map[string]interface{}{
		"userId": author.ID, "title": "t", "text": "x", "mbtiPersonality": "ENTP",
	})

	resp := env.do(t, http.MethodPut, "/comments/999/like", map[string]interface{}{"userId": 999})
	assertErrorBody(t, resp, http.StatusBadRequest, "Comment not found")

	resp = env.do(t, http.MethodPut, fmt.Sprintf("/comments/%d/like", c.ID), map[string]interface{}{"userId": 999})
	assertErrorBody(t, resp, http.StatusBadRequest, "User not found")

	resp = env.do(t, http.MethodPut, "/comments/999/unlike", nil)
	assertErrorBody(t, resp, http.StatusBadRequest, "Comment not found")

	resp = env.do(t, http.MethodPut, fmt.Sprintf("/comments/%d/unlike", c.ID), nil)
	assertErrorBody(t, resp, http.StatusBadRequest, "User not found")

	resp = env.do(t, http.MethodPut, "/comments/abc/like", nil)
	assertErrorBody(t, resp, http.StatusBadRequest, "Invalid ID")
}

func TestListComments_SortAndFilter(t *testing.T) {
	env := newTestEnv(t, nil)
	author := testutil.CreateProfile(t, env.db, "author")
	fans := []*models.Profile{
		testutil.CreateProfile(t, env.db, "fan1"),
		testutil.CreateProfile(t, env.db, "fan2"),
	}

	old := env.createComment(t, map[string]interface{}{
		"userId": author.ID, "title": "old", "text": "x",
		"mbtiPersonality": "INTJ", "enneagramPersonality": "5w6",
	})
	env.createComment(t, map[string]interface{}{
		"userId": author.ID, "title": "mid", "text": "x",
		"mbtiPersonality": "ENFP", "zodiacPersonality": "Leo",
	})
	newest := env.createComment(t, map[string]interface{}{
		"userId": author.ID, "title": "new", "text": "x",
		"enneagramPersonality": "2w1",
	})

	for _, fan := range fans {
		resp := env.do(t, http.MethodPut, fmt.Sprintf("/comments/%d/like", old.ID), map[string]interface{}{"userId": fan.ID})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := env.do(t, http.MethodPut, fmt.Sprintf("/comments/%d/like", newest.ID), map[string]interface{}{"userId": fans[0].ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Default Most Liked", "", []string{"old", "new", "mid"}},
		{"Best", "?sort=best", []string{"old", "new", "mid"}},
		{"Unknown Sort", "?sort=popular", []string{"old", "new", "mid"}},
		{"Recent", "?sort=recent", []string{"new", "mid", "old"}},
		{"Recent Is Case Sensitive", "?sort=RECENT", []string{"old", "new", "mid"}},
		{"Recent Is Not Trimmed", "?sort=%20recent", []string{"old", "new", "mid"}},
		{"Filter One", "?personalities=mbti", []string{"old", "mid"}},
		{"Filter All Required", "?sort=recent&personalities=mbti,enneagram", []string{"old"}},
		{"Filter Normalized", "?personalities=%20ZODIAC%20,,zodiac", []string{"mid"}},
		{"Filter Unknown System", "?personalities=socionics", []string{}},
		{"Limit", "?sort=recent&limit=2", []string{"new", "mid"}},
		{"Offset", "?sort=recent&limit=2&offset=2", []string{"old"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(env.listComments(t, tt.query)))
		})
	}

	listed := env.listComments(t, "")
	require.Len(t, listed, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{listed[0].LikesCount, listed[1].LikesCount, listed[2].LikesCount})

	resp = env.do(t, http.MethodGet, "/comments?limit=-1", nil)
	assertErrorBody(t, resp, http.StatusBadRequest, "Invalid limit")

	resp = env.do(t, http.MethodGet, "/comments?offset=x", nil)
	assertErrorBody(t, resp, http.StatusBadRequest, "Invalid offset")
}

func TestCommentEvents_PublishedToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	env := newTestEnv(t, rdb)
	author := testutil.CreateProfile(t, env.db, "author")
	fan := testutil.CreateProfile(t, env.db, "fan")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan notifications.Event, 8)
	require.NoError(t, notifications.NewNotifier(rdb).StartCommentSubscriber(ctx, func(payload string) {
		var e notifications.Event
		if err := json.Unmarshal([]byte(payload), &e); err == nil {
			events <- e
		}
	}))

	next := func() notifications.Event {
		t.Helper()
		select {
		case e := <-events:
			return e
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for comment event")
			return notifications.Event{}
		}
	}

	c := env.createComment(t, map[string]interface{}{
		"userId": author.ID, "title": "t", "text": "x", "zodiacPersonality": "Virgo",
	})
	created := next()
	assert.Equal(t, notifications.EventCommentCreated, created.Type)
	assert.NotEmpty(t, created.ID)

	resp := env.do(t, http.MethodPut, fmt.Sprintf("/comments/%d/like", c.ID), map[string]interface{}{"userId": fan.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	liked := next()
	assert.Equal(t, notifications.EventCommentLiked, liked.Type)
	payload, ok := liked.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(c.ID), payload["commentId"])
	assert.Equal(t, float64(1), payload["likesCount"])

	resp = env.do(t, http.MethodPut, fmt.Sprintf("/comments/%d/unlike", c.ID), map[string]interface{}{"userId": fan.ID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	unliked := next()
	assert.Equal(t, notifications.EventCommentUnliked, unliked.Type)
	assert.Equal(t, float64(0), unliked.Payload.(map[string]interface{})["likesCount"])

	resp = env.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
