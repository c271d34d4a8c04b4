package service

import (
	"context"
	"errors"
	"log"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/session"
)

var ErrFollowSelf = errors.New("you cannot follow yourself")

// LoadSession restores the session at startup. session.ErrUnauthenticated
// means the caller should show the login form.
func (d *Dispatcher) LoadSession(ctx context.Context) (*domain.Session, error) {
	s, err := d.session.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrUnauthenticated) {
			log.Printf("ERROR: Failed to load session: %v", err)
		}
		return nil, err
	}
	log.Printf("INFO: Session loaded for user %s", s.User.ID)
	return s, nil
}

// Login authenticates and stores the resulting session.
func (d *Dispatcher) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := d.validate(creds); err != nil {
		return nil, err
	}

	var s *domain.Session
	err := d.dispatch(ctx, mutation{
		key:        KindSession,
		successMsg: "Login successfully",
		failMsg:    "Invalid email or password",
		request: func(ctx context.Context) error {
			res, err := d.api.Login(ctx, creds)
			if err != nil {
				return err
			}
			s = &domain.Session{User: res.User, Token: res.Token}
			return nil
		},
		apply: func() {
			if err := d.session.Set(ctx, s); err != nil {
				log.Printf("WARN: Failed to persist session for user %s: %v", s.User.ID, err)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Register creates an account. The user still has to log in afterwards.
func (d *Dispatcher) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := d.validate(reg); err != nil {
		return nil, err
	}

	var user *domain.User
	err := d.dispatch(ctx, mutation{
		key:        KindRegistration,
		successMsg: "User created successfully",
		request: func(ctx context.Context) error {
			u, err := d.api.Register(ctx, reg)
			user = u
			return err
		},
	})
	return user, err
}

// Logout tells the server the user went inactive and clears the local
// session. The local clear happens even when the server call fails.
func (d *Dispatcher) Logout(ctx context.Context) error {
	if !d.begin(KindSession) {
		return ErrBusy
	}
	err := d.session.Clear(ctx)
	d.finish(KindSession, StateSucceeded)
	if err != nil {
		log.Printf("WARN: Failed to remove stored session: %v", err)
	}
	return nil
}

// DeleteAccount removes the logged-in user's account and ends the session.
func (d *Dispatcher) DeleteAccount(ctx context.Context) error {
	u, err := d.currentUser()
	if err != nil {
		return err
	}
	return d.dispatch(ctx, mutation{
		key:        GuardKey(KindProfile, u.ID),
		successMsg: "Account deleted successfully",
		failMsg:    "Failed to delete account",
		request: func(ctx context.Context) error {
			return d.api.DeleteUser(ctx, u.ID)
		},
		apply: func() {
			// The account is gone, so there is nobody to deactivate.
			if err := d.session.Forget(ctx); err != nil {
				log.Printf("WARN: Failed to remove stored session: %v", err)
			}
			d.lists.Users.ApplyRemoval(u.ID)
		},
	})
}

// GetUser fetches a profile for display.
func (d *Dispatcher) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := d.api.GetUser(ctx, userID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch user %s: %v", userID, err)
		return nil, err
	}
	d.lists.Users.ApplyUpdate(*u)
	return u, nil
}

// LoadUsers fills the user directory, optionally only with active users.
func (d *Dispatcher) LoadUsers(ctx context.Context, activeOnly bool) error {
	err := d.lists.Users.Load(ctx, func(ctx context.Context) ([]domain.User, error) {
		return d.api.ListUsers(ctx, activeOnly)
	})
	if err != nil {
		log.Printf("ERROR: Failed to fetch users: %v", err)
	}
	return err
}

// UpdateProfile edits a profile. Editing your own profile also updates the
// stored session so every view sees the new name and image.
func (d *Dispatcher) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	current, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	if userID == "" {
		userID = current.ID
	}
	if err := d.validate(upd); err != nil {
		return nil, err
	}

	var updated *domain.User
	err = d.dispatch(ctx, mutation{
		key:        GuardKey(KindProfile, userID),
		successMsg: "Profile updated successfully",
		failMsg:    "Failed to update profile",
		request: func(ctx context.Context) error {
			u, err := d.api.UpdateProfile(ctx, userID, upd)
			updated = u
			return err
		},
		apply: func() {
			d.lists.Users.ApplyUpdate(*updated)
			if updated.ID != current.ID {
				return
			}
			s := d.session.Get()
			if s == nil {
				return
			}
			s.User = mergeUser(s.User, *updated)
			if err := d.session.Set(ctx, s); err != nil {
				log.Printf("WARN: Failed to persist updated session: %v", err)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FollowUser toggles following followedID. The followed user returned by the
// server replaces the local copy.
func (d *Dispatcher) FollowUser(ctx context.Context, followedID string) (*domain.User, error) {
	current, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	if followedID == current.ID {
		d.reject(ErrFollowSelf)
		return nil, ErrFollowSelf
	}

	var followed *domain.User
	err = d.dispatch(ctx, mutation{
		key: GuardKey(KindFollow, followedID),
		request: func(ctx context.Context) error {
			u, err := d.api.Follow(ctx, current.ID, followedID)
			followed = u
			return err
		},
		apply: func() {
			d.lists.Users.ApplyUpdate(*followed)
		},
		success: func() string {
			if followed.IsFollowedBy(current.ID) {
				return "You are now following " + followed.Name
			}
			return "You unfollowed " + followed.Name
		},
	})
	if err != nil {
		return nil, err
	}
	return followed, nil
}

// mergeUser overlays the fields a profile edit may change.
func mergeUser(base, upd domain.User) domain.User {
	if upd.Name != "" {
		base.Name = upd.Name
	}
	if upd.Email != "" {
		base.Email = upd.Email
	}
	if upd.ProfileImage != "" {
		base.ProfileImage = upd.ProfileImage
	}
	base.Followers = upd.Followers
	base.FollowersCount = upd.FollowersCount
	base.FollowingCount = upd.FollowingCount
	return base
}
