package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

type newsletterRepoStub struct {
	subs        map[string]models.NewsletterSubscription
	createCalls int
	createErr   error
}

func (r *newsletterRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, s := range r.subs {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *newsletterRepoStub) Create(ctx context.Context, sub *models.NewsletterSubscription) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	sub.ID = validID
	r.subs[sub.ID] = *sub
	return nil
}

func (r *newsletterRepoStub) Deactivate(ctx context.Context, email string) error {
	for id, s := range r.subs {
		if s.Email == email {
			s.IsActive = false
			r.subs[id] = s
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *newsletterRepoStub) List(ctx context.Context) ([]models.NewsletterSubscription, error) {
	out := []models.NewsletterSubscription{}
	for _, s := range r.subs {
		out = append(out, s)
	}
	return out, nil
}

func (r *newsletterRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.subs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.subs, id)
	return nil
}

type welcomeStub struct {
	sent []string
	err  error
}

func (w *welcomeStub) SendWelcome(ctx context.Context, email string) error {
	w.sent = append(w.sent, email)
	return w.err
}

func TestNewsletterSubscribe(t *testing.T) {
	repo := &newsletterRepoStub{subs: map[string]models.NewsletterSubscription{}}
	welcome := &welcomeStub{}
	svc := NewNewsletterService(repo, welcome, nil, nil, zap.NewNop())

	sub, err := svc.Subscribe(context.Background(), NewsletterRequest{Email: " ortu@example.com "})
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	assert.Equal(t, "ortu@example.com", sub.Email)
	assert.Equal(t, []string{"ortu@example.com"}, welcome.sent)
}

func TestNewsletterSubscribeDuplicateDoesNotWrite(t *testing.T) {
	repo := &newsletterRepoStub{subs: map[string]models.NewsletterSubscription{
		validID: {ID: validID, Email: "ortu@example.com", IsActive: true},
	}}
	welcome := &welcomeStub{}
	svc := NewNewsletterService(repo, welcome, nil, nil, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), NewsletterRequest{Email: "ortu@example.com"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Zero(t, repo.createCalls)
	assert.Empty(t, welcome.sent)
}

func TestNewsletterSubscribeLosingInsertRaceIsConflict(t *testing.T) {
	dup := appErrors.Wrap(errors.New("pq: duplicate key value"), appErrors.ErrDuplicate.Code, appErrors.ErrDuplicate.Status, "create subscription")
	repo := &newsletterRepoStub{subs: map[string]models.NewsletterSubscription{}, createErr: dup}
	welcome := &welcomeStub{}
	svc := NewNewsletterService(repo, welcome, nil, nil, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), NewsletterRequest{Email: "ortu@example.com"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "this email is already subscribed to our newsletter", appErr.Message)
	assert.Empty(t, welcome.sent)
}

func TestNewsletterSubscribeSurvivesMailFailure(t *testing.T) {
	repo := &newsletterRepoStub{subs: map[string]models.NewsletterSubscription{}}
	svc := NewNewsletterService(repo, &welcomeStub{err: errors.New("smtp down")}, nil, nil, zap.NewNop())

	sub, err := svc.Subscribe(context.Background(), NewsletterRequest{Email: "ortu@example.com"})
	require.NoError(t, err)
	assert.Equal(t, validID, sub.ID)
}

func TestNewsletterSubscribeInvalidEmail(t *testing.T) {
	repo := &newsletterRepoStub{subs: map[string]models.NewsletterSubscription{}}
	svc := NewNewsletterService(repo, nil, nil, nil, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), NewsletterRequest{Email: "nope"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"email must be a valid email"}, appErr.Details)
}

func TestNewsletterUnsubscribe(t *testing.T) {
	repo := &newsletterRepoStub{subs: map[string]models.NewsletterSubscription{
		validID: {ID: validID, Email: "ortu@example.com", IsActive: true},
	}}
	svc := NewNewsletterService(repo, nil, nil, nil, zap.NewNop())

	require.NoError(t, svc.Unsubscribe(context.Background(), NewsletterRequest{Email: "ortu@example.com"}))
	assert.False(t, repo.subs[validID].IsActive)

	err := svc.Unsubscribe(context.Background(), NewsletterRequest{Email: "other@example.com"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
