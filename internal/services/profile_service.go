package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

type ProfileService struct {
	base
}

func NewProfileService(store *repository.Store, pub events.Publisher, log logrus.FieldLogger) *ProfileService {
	return &ProfileService{base: newBase(store, pub, log)}
}

func (s *ProfileService) GetMine(ctx context.Context, sess auth.Session) (*models.Profile, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	p, err := s.store.Profiles.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, s.fail("get profile", err, logrus.Fields{"user_id": sess.UserID})
	}
	return p, nil
}

// UpdateMine writes every editable field in one update. Email is not editable here.
func (s *ProfileService) UpdateMine(ctx context.Context, sess auth.Session, req *dtos.ProfileUpdateRequest) (*models.Profile, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.store.Profiles.UpdateByUserID(ctx, sess.UserID, req.Fields())
	if err != nil {
		return nil, s.fail("update profile", err, logrus.Fields{"user_id": sess.UserID})
	}
	s.log.WithField("user_id", sess.UserID).Info("profile updated")
	return p, nil
}

// Provision creates the profile row and the default "user" role for a first-time session. The
// hosted auth provider does this on signup; running without it, the first session does it here.
// An existing profile is left alone, roles included: only admins change role rows after signup.
func (s *ProfileService) Provision(ctx context.Context, sess auth.Session) (auth.Session, error) {
	if err := requireUser(sess); err != nil {
		return sess, err
	}
	fields := logrus.Fields{"user_id": sess.UserID}
	_, err := s.store.Profiles.GetByUserID(ctx, sess.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p := &models.Profile{UserID: sess.UserID, Email: sess.Email, AccountStatus: models.AccountActive}
		if err := s.store.Profiles.Create(ctx, p); err != nil && !errors.Is(err, repository.ErrConflict) {
			return sess, s.fail("create profile", err, fields)
		}
		if err := s.store.Roles.Grant(ctx, sess.UserID, models.RoleUser); err != nil && !errors.Is(err, repository.ErrConflict) {
			return sess, s.fail("grant default role", err, fields)
		}
		if !sess.HasRole(models.RoleUser) {
			sess.Roles = append(sess.Roles, models.RoleUser)
		}
		s.log.WithFields(fields).Info("profile provisioned")
	case err != nil:
		return sess, s.fail("get profile", err, fields)
	}
	return sess, nil
}
