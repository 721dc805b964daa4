package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kindredhq/kindred/internal/store/sqlite"
)

// newTestServer spins up the full router over an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(NewRouter(sqlite.NewWithDB(db)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeInto(t *testing.T, data []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out))
}

// registerAndLogin creates an account and opens a session, returning
// (userID, token).
func registerAndLogin(t *testing.T, srv *httptest.Server, username string) (string, string) {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
		"username": username,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var u struct {
		UserID string `json:"userId"`
	}
	decodeInto(t, data, &u)

	resp, data = doJSON(t, http.MethodPost, srv.URL+"/api/sessions", "", map[string]string{
		"username": username,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var sess struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	decodeInto(t, data, &sess)
	require.Equal(t, u.UserID, sess.UserID)
	require.NotEmpty(t, sess.Token)
	return u.UserID, sess.Token
}

func TestRegisterValidationAndConflict(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
		"username": "x", "password": "longenough",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
		"username": "carol", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
		"username": "carol", "password": "longenough",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
		"username": "carol", "password": "otherpassword",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/posts", "not-a-real-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	userID, token := registerAndLogin(t, srv, "alice")

	// Wrong password does not open a session.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", "", map[string]string{
		"username": "alice", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/sessions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sess struct {
		UserID string `json:"userId"`
	}
	decodeInto(t, data, &sess)
	require.Equal(t, userID, sess.UserID)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/sessions", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Token is dead after logout.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/sessions", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostCRUDAndOwnership(t *testing.T) {
	srv := newTestServer(t)
	aliceID, aliceTok := registerAndLogin(t, srv, "alice")
	_, bobTok := registerAndLogin(t, srv, "bob")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/posts", aliceTok, map[string]any{
		"content": "hello world",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var post struct {
		PostID   string `json:"postId"`
		AuthorID string `json:"authorId"`
		Content  string `json:"content"`
	}
	decodeInto(t, data, &post)
	require.Equal(t, aliceID, post.AuthorID)

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/posts/"+post.PostID, bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Only the author may edit.
	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/posts/"+post.PostID, bobTok, map[string]string{
		"content": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data = doJSON(t, http.MethodPatch, srv.URL+"/api/posts/"+post.PostID, aliceTok, map[string]string{
		"content": "edited",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &post)
	require.Equal(t, "edited", post.Content)

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/users/"+aliceID+"/posts", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []json.RawMessage
	decodeInto(t, data, &list)
	require.Len(t, list, 1)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/posts/"+post.PostID, aliceTok, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/posts/"+post.PostID, aliceTok, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFriendRequestFlow(t *testing.T) {
	srv := newTestServer(t)
	aliceID, aliceTok := registerAndLogin(t, srv, "alice")
	bobID, bobTok := registerAndLogin(t, srv, "bob")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/friend-requests", aliceTok, map[string]string{
		"toUserId": bobID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var req struct {
		RequestID string `json:"requestId"`
	}
	decodeInto(t, data, &req)

	// Sender cannot accept their own request.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/friend-requests/"+req.RequestID+"/accept", aliceTok, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data = doJSON(t, http.MethodPut, srv.URL+"/api/friend-requests/"+req.RequestID+"/accept", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	// Both sides now see the friendship.
	for _, tok := range []string{aliceTok, bobTok} {
		resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/friends", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var friends []json.RawMessage
		decodeInto(t, data, &friends)
		require.Len(t, friends, 1)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/friends/"+aliceID, bobTok, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/friends", aliceTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []json.RawMessage
	decodeInto(t, data, &friends)
	require.Empty(t, friends)
}

func TestGoalStatusAndSweep(t *testing.T) {
	srv := newTestServer(t)
	_, tok := registerAndLogin(t, srv, "alice")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/goals", tok, map[string]any{
		"title": "ship it", "description": "release", "due": time.Now().Add(40 * time.Millisecond).UTC(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var goal struct {
		GoalID string `json:"goalId"`
		Status string `json:"status"`
	}
	decodeInto(t, data, &goal)
	require.Equal(t, "pending", goal.Status)

	// Missing due date is rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/goals", tok, map[string]any{
		"title": "no due", "description": "",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	time.Sleep(60 * time.Millisecond)
	resp, data = doJSON(t, http.MethodPost, srv.URL+"/api/goals/sweep", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var swept struct {
		SweptCount int `json:"sweptCount"`
	}
	decodeInto(t, data, &swept)
	require.Equal(t, 1, swept.SweptCount)

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/goals/"+goal.GoalID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &goal)
	require.Equal(t, "past due", goal.Status)

	// Status filter.
	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/goals?status=past+due", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var goals []json.RawMessage
	decodeInto(t, data, &goals)
	require.Len(t, goals, 1)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/goals?status=bogus", tok, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItemDefaultsAndOwnership(t *testing.T) {
	srv := newTestServer(t)
	_, aliceTok := registerAndLogin(t, srv, "alice")
	_, bobTok := registerAndLogin(t, srv, "bob")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/items", aliceTok, map[string]string{
		"title": "groceries", "description": "milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var item struct {
		ItemID string `json:"itemId"`
		Status string `json:"status"`
	}
	decodeInto(t, data, &item)
	require.Equal(t, "in-progress", item.Status)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/items/"+item.ItemID, bobTok, map[string]string{
		"status": "complete",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data = doJSON(t, http.MethodPatch, srv.URL+"/api/items/"+item.ItemID, aliceTok, map[string]string{
		"status": "complete",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &item)
	require.Equal(t, "complete", item.Status)
}

func TestProfileConflictAndAccess(t *testing.T) {
	srv := newTestServer(t)
	aliceID, aliceTok := registerAndLogin(t, srv, "alice")
	_, bobTok := registerAndLogin(t, srv, "bob")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/profiles", aliceTok, map[string]any{
		"name": "Alice", "bio": "hi there",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/profiles", aliceTok, map[string]any{
		"name": "Alice Again",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Profiles are readable by any authenticated user.
	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/profiles/"+aliceID, bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prof struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	decodeInto(t, data, &prof)
	require.Equal(t, "Alice", prof.Name)
	require.Equal(t, "hi there", prof.Bio)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/profiles", aliceTok, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/profiles/"+aliceID, bobTok, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageLifecycle(t *testing.T) {
	srv := newTestServer(t)
	_, aliceTok := registerAndLogin(t, srv, "alice")
	bobID, bobTok := registerAndLogin(t, srv, "bob")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/messages/drafts", aliceTok, map[string]string{
		"recipientId": bobID, "text": "hey bob",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var msg struct {
		MessageID string `json:"messageId"`
		State     string `json:"state"`
		Text      string `json:"text"`
	}
	decodeInto(t, data, &msg)
	require.Equal(t, "draft", msg.State)
	draftID := msg.MessageID

	// Drafts are invisible to the recipient.
	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/messages/received", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox []json.RawMessage
	decodeInto(t, data, &inbox)
	require.Empty(t, inbox)

	resp, data = doJSON(t, http.MethodPatch, srv.URL+"/api/messages/drafts/"+draftID, aliceTok, map[string]string{
		"text": "hey bob, long time",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = doJSON(t, http.MethodPost, srv.URL+"/api/messages/drafts/"+draftID+"/send", aliceTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	decodeInto(t, data, &msg)
	require.Equal(t, "sent", msg.State)

	// Sending twice is rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/messages/drafts/"+draftID+"/send", aliceTok, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/messages/received", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var received []struct {
		MessageID string `json:"messageId"`
		Text      string `json:"text"`
	}
	decodeInto(t, data, &received)
	require.Len(t, received, 1)
	require.Equal(t, "hey bob, long time", received[0].Text)

	// Editing the sent copy rewrites the received copy too.
	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/messages/sent/"+draftID, aliceTok, map[string]string{
		"text": "corrected",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/messages/received", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &received)
	require.Len(t, received, 1)
	require.Equal(t, "corrected", received[0].Text)

	// Unsend removes both copies.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/messages/sent/"+draftID, aliceTok, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/messages/received", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &inbox)
	require.Empty(t, inbox)
}

func TestUpdateUserSelfOnly(t *testing.T) {
	srv := newTestServer(t)
	aliceID, aliceTok := registerAndLogin(t, srv, "alice")
	_, bobTok := registerAndLogin(t, srv, "bob")

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/api/users/"+aliceID, bobTok, map[string]string{
		"username": "mallory",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data := doJSON(t, http.MethodPatch, srv.URL+"/api/users/"+aliceID, aliceTok, map[string]string{
		"username": "alice2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var u struct {
		Username string `json:"username"`
	}
	decodeInto(t, data, &u)
	require.Equal(t, "alice2", u.Username)

	resp, data = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/users?username=%s", srv.URL, "alice2"), bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	srv := newTestServer(t)
	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Status string `json:"status"`
	}
	decodeInto(t, data, &body)
	require.Contains(t, []string{"healthy", "unhealthy"}, body.Status)
}
