package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mybudget/internal/cache"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate carries the optional profile fields a user may change on
// their own account. Nil pointers leave the column untouched.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	ProfilePicture *string
	PhoneNumber    *string
	Bio            *string
	Country        *string
	City           *string
	PostalCode     *string
	AddressLine    *string
}

// UserService exposes profile operations for the resolved user.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	values := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			values[column] = *v
		}
	}
	set("first_name", update.FirstName)
	set("last_name", update.LastName)
	set("profile_picture", update.ProfilePicture)
	set("phone_number", update.PhoneNumber)
	set("bio", update.Bio)
	set("country", update.Country)
	set("city", update.City)
	set("postal_code", update.PostalCode)
	set("address_line", update.AddressLine)

	if len(values) > 0 {
		if err := s.repo.UpdateColumns(ctx, id, values); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.repo.FindByID(ctx, id)
}
