package store

import (
	"github.com/baharkarakas/inkwell/internal/models"
	"github.com/baharkarakas/inkwell/internal/services"
)

// Phase is where an async action is in its lifecycle.
type Phase string

const (
	Pending   Phase = "pending"
	Fulfilled Phase = "fulfilled"
	Rejected  Phase = "rejected"
)

// Synchronous actions.
const (
	ActionLogout          = "auth/logout"
	ActionClearAuthError  = "auth/clearError"
	ActionClearPostsError = "posts/clearError"
	ActionHydrate         = "auth/hydrate"
)

// Action is what reducers consume and subscribers observe. Phase is empty
// for synchronous actions. Payload types per action:
// login/register/hydrate models.Session, fetch []models.EnrichedPost,
// add/update models.EnrichedPost, delete string.
type Action struct {
	Type    string
	Phase   Phase
	Payload any
	Error   string
}

func (a Action) String() string {
	if a.Phase == "" {
		return a.Type
	}
	return a.Type + "/" + string(a.Phase)
}

// Reduce returns the state after a. s is not modified.
func Reduce(s State, a Action) State {
	s = s.clone()
	switch a.Type {
	case services.ActionLogin, services.ActionRegister:
		s.Auth = reduceAuth(s.Auth, a)
	case ActionHydrate:
		if sess, ok := a.Payload.(models.Session); ok {
			s.Auth.Token = sess.Token
			if sess.User.ID != "" || sess.User.Email != "" {
				u := sess.User
				s.Auth.User = &u
			}
		}
	case ActionLogout:
		s.Auth = AuthState{Status: StatusIdle}
	case ActionClearAuthError:
		s.Auth.Error = ""

	case services.ActionFetchPosts:
		s.Posts = reduceFetch(s.Posts, a)
	case services.ActionAddPost, services.ActionUpdatePost, services.ActionDeletePost:
		s.Posts = reduceMutation(s.Posts, a)
	case ActionClearPostsError:
		s.Posts.Error = ""
	}
	return s
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a.Phase {
	case Pending:
		s.Status = StatusLoading
		s.Error = ""
	case Fulfilled:
		sess := a.Payload.(models.Session)
		u := sess.User
		s.Status = StatusSucceeded
		s.Token = sess.Token
		s.User = &u
		s.Error = ""
	case Rejected:
		s.Status = StatusFailed
		s.Error = a.Error
	}
	return s
}

func reduceFetch(s PostsState, a Action) PostsState {
	switch a.Phase {
	case Pending:
		s.Status = StatusLoading
	case Fulfilled:
		items := a.Payload.([]models.EnrichedPost)
		s.Status = StatusSucceeded
		s.Items = append(make([]models.EnrichedPost, 0, len(items)), items...)
		s.Error = ""
	case Rejected:
		s.Status = StatusFailed
		s.Error = a.Error
	}
	return s
}

// reduceMutation never touches Status; that stays whatever the last fetch left.
func reduceMutation(s PostsState, a Action) PostsState {
	switch a.Phase {
	case Rejected:
		s.Error = a.Error
		return s
	case Fulfilled:
	default:
		return s
	}

	switch a.Type {
	case services.ActionAddPost:
		p := a.Payload.(models.EnrichedPost)
		s.Items = append([]models.EnrichedPost{p}, s.Items...)
	case services.ActionUpdatePost:
		p := a.Payload.(models.EnrichedPost)
		for i := range s.Items {
			if s.Items[i].ID == p.ID {
				s.Items[i] = p
			}
		}
	case services.ActionDeletePost:
		id := a.Payload.(string)
		kept := s.Items[:0]
		for _, it := range s.Items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		s.Items = kept
	}
	return s
}
