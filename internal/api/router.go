package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindredhq/kindred/internal/api/recovery"
	"github.com/kindredhq/kindred/internal/auth"
	"github.com/kindredhq/kindred/internal/services"
	"github.com/kindredhq/kindred/internal/store"
)

// NewRouter wires all HTTP routes to handlers. Registration, login and the
// health endpoint are public; everything else sits behind the session
// middleware.
func NewRouter(st store.Store) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	userSvc := services.NewUserService(st, auth.NewArgon2())
	sessionSvc := services.NewSessionService(st)
	postSvc := services.NewPostService(st)
	friendSvc := services.NewFriendService(st)
	itemSvc := services.NewItemService(st)
	goalSvc := services.NewGoalService(st)
	profileSvc := services.NewProfileService(st)
	messageSvc := services.NewMessageService(st)

	users := NewUserHandler(userSvc, sessionSvc)
	sessions := NewSessionHandler(userSvc, sessionSvc)
	posts := NewPostHandler(postSvc)
	friends := NewFriendHandler(friendSvc)
	items := NewItemHandler(itemSvc)
	goals := NewGoalHandler(goalSvc)
	profiles := NewProfileHandler(profileSvc)
	messages := NewMessageHandler(messageSvc)
	healthHandler := NewHealthHandler()

	// Public endpoints
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods(http.MethodGet)
	root.HandleFunc("/api/users", users.Register).Methods(http.MethodPost)
	root.HandleFunc("/api/sessions", sessions.Login).Methods(http.MethodPost)

	// Everything below requires a live session.
	authed := root.PathPrefix("/api").Subrouter()
	authed.Use(SessionMiddleware(sessionSvc))

	// Users
	authed.HandleFunc("/users", users.LookupUser).Methods(http.MethodGet)
	authed.HandleFunc("/users/{userId}", users.GetUser).Methods(http.MethodGet)
	authed.HandleFunc("/users/{userId}", users.UpdateUser).Methods(http.MethodPatch)
	authed.HandleFunc("/users/{userId}", users.DeleteUser).Methods(http.MethodDelete)

	// Sessions
	authed.HandleFunc("/sessions", sessions.Current).Methods(http.MethodGet)
	authed.HandleFunc("/sessions", sessions.Logout).Methods(http.MethodDelete)

	// Posts
	authed.HandleFunc("/posts", posts.CreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/posts", posts.ListPosts).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{postId}", posts.GetPost).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{postId}", posts.UpdatePost).Methods(http.MethodPatch)
	authed.HandleFunc("/posts/{postId}", posts.DeletePost).Methods(http.MethodDelete)
	authed.HandleFunc("/users/{userId}/posts", posts.ListUserPosts).Methods(http.MethodGet)

	// Friends
	authed.HandleFunc("/friends", friends.ListFriends).Methods(http.MethodGet)
	authed.HandleFunc("/friends/{userId}", friends.RemoveFriend).Methods(http.MethodDelete)
	authed.HandleFunc("/friend-requests", friends.SendRequest).Methods(http.MethodPost)
	authed.HandleFunc("/friend-requests", friends.ListRequests).Methods(http.MethodGet)
	authed.HandleFunc("/friend-requests/{requestId}/accept", friends.AcceptRequest).Methods(http.MethodPut)
	authed.HandleFunc("/friend-requests/{requestId}/reject", friends.RejectRequest).Methods(http.MethodPut)
	authed.HandleFunc("/friend-requests/{requestId}", friends.CancelRequest).Methods(http.MethodDelete)

	// Items
	authed.HandleFunc("/items", items.CreateItem).Methods(http.MethodPost)
	authed.HandleFunc("/items", items.ListItems).Methods(http.MethodGet)
	authed.HandleFunc("/items/{itemId}", items.GetItem).Methods(http.MethodGet)
	authed.HandleFunc("/items/{itemId}", items.UpdateItem).Methods(http.MethodPatch)
	authed.HandleFunc("/items/{itemId}", items.DeleteItem).Methods(http.MethodDelete)

	// Goals
	authed.HandleFunc("/goals", goals.CreateGoal).Methods(http.MethodPost)
	authed.HandleFunc("/goals", goals.ListGoals).Methods(http.MethodGet)
	authed.HandleFunc("/goals/sweep", goals.SweepPastDue).Methods(http.MethodPost)
	authed.HandleFunc("/goals/{goalId}", goals.GetGoal).Methods(http.MethodGet)
	authed.HandleFunc("/goals/{goalId}", goals.UpdateGoal).Methods(http.MethodPatch)
	authed.HandleFunc("/goals/{goalId}", goals.DeleteGoal).Methods(http.MethodDelete)

	// Profiles
	authed.HandleFunc("/profiles", profiles.CreateProfile).Methods(http.MethodPost)
	authed.HandleFunc("/profiles", profiles.UpdateProfile).Methods(http.MethodPatch)
	authed.HandleFunc("/profiles", profiles.DeleteProfile).Methods(http.MethodDelete)
	authed.HandleFunc("/profiles/{userId}", profiles.GetProfile).Methods(http.MethodGet)

	// Messages
	authed.HandleFunc("/messages/drafts", messages.CreateDraft).Methods(http.MethodPost)
	authed.HandleFunc("/messages/drafts", messages.ListDrafts).Methods(http.MethodGet)
	authed.HandleFunc("/messages/drafts/{messageId}", messages.UpdateDraft).Methods(http.MethodPatch)
	authed.HandleFunc("/messages/drafts/{messageId}", messages.DeleteDraft).Methods(http.MethodDelete)
	authed.HandleFunc("/messages/drafts/{messageId}/send", messages.SendDraft).Methods(http.MethodPost)
	authed.HandleFunc("/messages/sent", messages.ListSent).Methods(http.MethodGet)
	authed.HandleFunc("/messages/sent/{messageId}", messages.UpdateSent).Methods(http.MethodPatch)
	authed.HandleFunc("/messages/sent/{messageId}", messages.DeleteSent).Methods(http.MethodDelete)
	authed.HandleFunc("/messages/received", messages.ListReceived).Methods(http.MethodGet)
	authed.HandleFunc("/messages/received/{messageId}", messages.DeleteReceived).Methods(http.MethodDelete)

	return root
}
