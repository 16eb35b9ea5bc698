package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anjiri1684/college_review/database"
	"github.com/anjiri1684/college_review/models"
)

// GetUserProfile reads users/{userID} and refreshes the cached copy used to
// label new reviews. found is false until the user saves a profile for the
// first time.
func (s *SyncService) GetUserProfile(ctx context.Context, userID string) (models.UserProfile, bool, error) {
	profile := models.UserProfile{UserID: userID}

	doc, err := s.ledger.Get(ctx, models.CollectionUsers, userID)
	if errors.Is(err, database.ErrDocumentNotFound) {
		s.cacheProfile(profile)
		return profile, false, nil
	}
	if err != nil {
		return profile, false, fmt.Errorf("fetch profile: %w", err)
	}

	profile.Name = stringField(doc.Data, "name")
	profile.Status = stringField(doc.Data, "status")
	s.cacheProfile(profile)
	return profile, true, nil
}

// SaveUserProfile merges the given keys into users/{userID}; keys left nil
// keep their stored value. The saved profile is returned.
func (s *SyncService) SaveUserProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.UserProfile, error) {
	if userID == "" {
		return models.UserProfile{}, newCommandError(ErrUnauthorized, "User not logged in")
	}
	if err := validate.Struct(update); err != nil {
		return models.UserProfile{}, newCommandError(ErrValidation, "Name or status is too long")
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}

	if len(fields) > 0 {
		if err := s.ledger.Merge(ctx, models.CollectionUsers, userID, fields); err != nil {
			log.Printf("🔥 Failed to save profile for %s: %v", userID, err)
			return models.UserProfile{}, fmt.Errorf("save profile: %w", err)
		}
	}

	profile, _, err := s.GetUserProfile(ctx, userID)
	return profile, err
}

func (s *SyncService) cachedProfile(userID string) (models.UserProfile, bool) {
	s.profilesMu.RLock()
	defer s.profilesMu.RUnlock()
	profile, ok := s.profiles[userID]
	return profile, ok
}

func (s *SyncService) cacheProfile(profile models.UserProfile) {
	s.profilesMu.Lock()
	s.profiles[profile.UserID] = profile
	s.profilesMu.Unlock()
}
