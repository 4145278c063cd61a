package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

// base carries what every service shares.
type base struct {
	store  *repository.Store
	events events.Publisher
	log    logrus.FieldLogger
}

func newBase(store *repository.Store, pub events.Publisher, log logrus.FieldLogger) base {
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return base{store: store, events: pub, log: log}
}

// fail logs unexpected data-access errors and wraps them with the operation name. Not-found and
// conflict results are expected outcomes and pass through untouched.
func (b base) fail(op string, err error, fields logrus.Fields) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConflict) {
		return err
	}
	b.log.WithFields(fields).WithField("op", op).WithError(err).Error("data access failed")
	return fmt.Errorf("%s: %w", op, err)
}

// publish is best effort; the change it announces is already committed.
func (b base) publish(ctx context.Context, key string, payload any) {
	if err := b.events.Publish(ctx, key, payload); err != nil {
		b.log.WithError(err).WithField("key", key).Warn("publish event")
	}
}

func requireUser(sess auth.Session) error {
	if !sess.Authenticated || sess.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

func requireAdmin(sess auth.Session) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// isAll reports whether an equality filter value means "no constraint".
func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, models.FilterAll)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// profilesByUser loads the profiles of the given user ids with one batched read.
func (b base) profilesByUser(ctx context.Context, userIDs []string) (map[string]models.Profile, error) {
	out := make(map[string]models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	profiles, err := b.store.Profiles.ListByUserIDs(ctx, uniq(userIDs))
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.UserID] = p
	}
	return out, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
