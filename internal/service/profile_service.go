package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xxxsen/volcano/internal/model"
	"github.com/xxxsen/volcano/internal/pkg/dateutil"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
	"github.com/xxxsen/volcano/internal/pkg/jwt"
)

const (
	msgUserNotFound       = "User not found"
	msgProfileLoginNeeded = "Authorization header not found. Must be logged in to access account data"
	msgForbidden          = "Forbidden"
	msgProfileIncomplete  = "Request body incomplete: firstName, lastName, dob and address are required."
	msgProfileNotStrings  = "Request body invalid: firstName, lastName and address must be strings only."
	msgDOBFormat          = "Invalid input: dob must be a real date in format YYYY-MM-DD."
	msgDOBNotReal         = "Invalid input: dob must be a real calendar date."
	msgDOBFuture          = "Invalid input: dob must be a date in the past."
)

type ProfileService struct {
	users UserStore
	now   func() time.Time
}

func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{users: users, now: time.Now}
}

// Get returns a model.Profile for most callers and a model.OwnerProfile when
// the caller is the account owner.
func (s *ProfileService) Get(ctx context.Context, caller jwt.Identity, email string) (interface{}, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.New(appErr.ErrNotFound, msgUserNotFound)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if caller.Authenticated && caller.Email == email {
		return ownerProfile(user), nil
	}
	return model.Profile{Email: user.Email, FirstName: user.FirstName, LastName: user.LastName}, nil
}

// Update is owner-only. body is the decoded JSON request so that field types
// can be checked before anything touches the store.
func (s *ProfileService) Update(ctx context.Context, caller jwt.Identity, email string, body map[string]interface{}) (*model.OwnerProfile, error) {
	if !caller.Authenticated {
		return nil, appErr.New(appErr.ErrUnauthorized, msgProfileLoginNeeded)
	}
	if caller.Email != email {
		return nil, appErr.New(appErr.ErrForbidden, msgForbidden)
	}
	update, err := ParseProfileUpdate(body, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfile(ctx, email, update); err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.New(appErr.ErrNotFound, msgUserNotFound)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.New(appErr.ErrNotFound, msgUserNotFound)
		}
		return nil, fmt.Errorf("reload user: %w", err)
	}
	profile := ownerProfile(user)
	return &profile, nil
}

// ParseProfileUpdate checks presence, then types, then the date of birth.
func ParseProfileUpdate(body map[string]interface{}, now time.Time) (model.ProfileUpdate, error) {
	for _, key := range []string{"firstName", "lastName", "dob", "address"} {
		if isBlank(body[key]) {
			return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgProfileIncomplete)
		}
	}
	firstName, ok1 := body["firstName"].(string)
	lastName, ok2 := body["lastName"].(string)
	address, ok3 := body["address"].(string)
	if !ok1 || !ok2 || !ok3 {
		return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgProfileNotStrings)
	}
	dobRaw, ok := body["dob"].(string)
	if !ok {
		return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgDOBFormat)
	}
	dob, err := dateutil.ParsePastDate(dobRaw, now)
	switch {
	case errors.Is(err, dateutil.ErrFormat):
		return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgDOBFormat)
	case errors.Is(err, dateutil.ErrNotReal):
		return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgDOBNotReal)
	case errors.Is(err, dateutil.ErrInFuture):
		return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgDOBFuture)
	case err != nil:
		return model.ProfileUpdate{}, appErr.New(appErr.ErrInvalid, msgDOBFormat)
	}
	return model.ProfileUpdate{FirstName: firstName, LastName: lastName, DOB: dob, Address: address}, nil
}

func isBlank(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	}
	return false
}

func ownerProfile(user *model.User) model.OwnerProfile {
	profile := model.OwnerProfile{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Address:   user.Address,
	}
	if user.DOB != nil {
		dob := dateutil.Format(*user.DOB)
		profile.DOB = &dob
	}
	return profile
}
