// Package store holds the client-side snapshot of auth and posts, updated
// by dispatching facade actions through a worker pool.
package store

import "github.com/baharkarakas/inkwell/internal/models"

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

type AuthState struct {
	Token  string             `json:"token,omitempty"`
	User   *models.PublicUser `json:"user,omitempty"`
	Status Status             `json:"status"`
	Error  string             `json:"error,omitempty"`
}

type PostsState struct {
	Items  []models.EnrichedPost `json:"items"`
	Status Status                `json:"status"`
	Error  string                `json:"error,omitempty"`
}

type State struct {
	Auth  AuthState  `json:"auth"`
	Posts PostsState `json:"posts"`
}

func initialState() State {
	return State{
		Auth:  AuthState{Status: StatusIdle},
		Posts: PostsState{Items: []models.EnrichedPost{}, Status: StatusIdle},
	}
}

// clone copies everything a reducer might mutate.
func (s State) clone() State {
	out := s
	if s.Auth.User != nil {
		u := *s.Auth.User
		out.Auth.User = &u
	}
	out.Posts.Items = append(make([]models.EnrichedPost, 0, len(s.Posts.Items)), s.Posts.Items...)
	return out
}
