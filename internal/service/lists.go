package service

import (
	"sync"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
)

// Lists groups the synchronized collections shown by the client.
type Lists struct {
	Users           *listsync.List[domain.User]
	Posts           *listsync.List[domain.Post]
	ProfilePosts    *listsync.List[domain.Post]
	Shares          *listsync.List[domain.SharedPost]
	WorkoutStatuses *listsync.List[domain.WorkoutStatus]
	WorkoutPlans    *listsync.List[domain.WorkoutPlan]
	MealPlans       *listsync.List[domain.MealPlan]

	mu           sync.Mutex
	profileOwner string
	comments     map[string]*listsync.List[domain.Comment]
}

// NewLists creates empty collections. Meal plans and workout plans are kept
// in descending date order.
func NewLists() *Lists {
	return &Lists{
		Users:           listsync.New[domain.User](),
		Posts:           listsync.New[domain.Post](),
		ProfilePosts:    listsync.New[domain.Post](),
		Shares:          listsync.New[domain.SharedPost](),
		WorkoutStatuses: listsync.New[domain.WorkoutStatus](),
		WorkoutPlans: listsync.New(listsync.WithSort(func(a, b domain.WorkoutPlan) bool {
			return a.Date.After(b.Date)
		})),
		MealPlans: listsync.New(listsync.WithSort(func(a, b domain.MealPlan) bool {
			return a.Date.After(b.Date)
		})),
		comments: map[string]*listsync.List[domain.Comment]{},
	}
}

// Comments returns the comment list of a post, creating it on first use.
func (l *Lists) Comments(postID string) *listsync.List[domain.Comment] {
	l.mu.Lock()
	defer l.mu.Unlock()
	list, ok := l.comments[postID]
	if !ok {
		list = listsync.New[domain.Comment]()
		l.comments[postID] = list
	}
	return list
}

// ReleaseComments detaches and forgets the comment list of a post, e.g. when
// its view closes. Requests still in flight for it no longer touch state.
func (l *Lists) ReleaseComments(postID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if list, ok := l.comments[postID]; ok {
		list.Detach()
		delete(l.comments, postID)
	}
}

func (l *Lists) setProfileOwner(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.profileOwner = userID
}

// ProfileOwner is the user whose posts ProfilePosts holds.
func (l *Lists) ProfileOwner() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.profileOwner
}

// applyPost patches a post in every list holding it.
func (l *Lists) applyPost(p domain.Post) {
	l.Posts.ApplyUpdate(p)
	l.ProfilePosts.ApplyUpdate(p)
}

// syncPostComments copies a post's comment list into the post entity so
// counters rendered from the post stay consistent.
func (l *Lists) syncPostComments(postID string, list *listsync.List[domain.Comment]) {
	if list.Detached() {
		return
	}
	comments := list.Items()
	for _, posts := range []*listsync.List[domain.Post]{l.Posts, l.ProfilePosts} {
		if p, ok := posts.Get(postID); ok {
			p.Comments = comments
			posts.ApplyUpdate(p)
		}
	}
	// Shared posts are commented on under their own id.
	if sp, ok := l.Shares.Get(postID); ok {
		sp.Comments = comments
		l.Shares.ApplyUpdate(sp)
	}
}
