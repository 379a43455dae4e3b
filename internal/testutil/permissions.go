package testutil

import (
	"sync"

	"forumtrack/internal/model"
)

// StubPermissions is a PermissionChecker backed by an explicit deny list.
// Every authenticated user can read every forum unless denied.
// Anonymous users can read nothing.
type StubPermissions struct {
	mu     sync.Mutex
	denied map[string]bool
	Err    error
}

func NewStubPermissions() *StubPermissions {
	return &StubPermissions{denied: make(map[string]bool)}
}

// Deny hides forum from user.
func (p *StubPermissions) Deny(user *model.User, forum *model.Forum) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.denied[user.ID+"/"+forum.ID] = true
}

func (p *StubPermissions) CanRead(user *model.User, forum *model.Forum) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return false, p.Err
	}
	if !user.IsAuthenticated() {
		return false, nil
	}
	return !p.denied[user.ID+"/"+forum.ID], nil
}
