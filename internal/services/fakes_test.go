package services

import (
	"context"
	"errors"
	"time"

	"github.com/devlinkhq/devlink/internal/models"
	"github.com/devlinkhq/devlink/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeProfileRepo mirrors the document-store semantics in memory:
// sparse $set on upsert, prepend on push, match-or-noop on pull.
type fakeProfileRepo struct {
	byUser map[string]*models.Profile
	calls  *[]string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: map[string]*models.Profile{}}
}

func (f *fakeProfileRepo) record(call string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, call)
	}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]models.Profile, error) {
	out := make([]models.Profile, 0, len(f.byUser))
	for _, p := range f.byUser {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	now := time.Now().UTC()
	p, ok := f.byUser[userID]
	if !ok {
		p = &models.Profile{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			CreatedAt:  now,
		}
		f.byUser[userID] = p
	}

	p.Status = patch.Status
	p.Skills = patch.Skills
	p.UpdatedAt = now
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&p.Company, patch.Company)
	apply(&p.Website, patch.Website)
	apply(&p.Location, patch.Location)
	apply(&p.Bio, patch.Bio)
	apply(&p.GithubUsername, patch.GithubUsername)
	apply(&p.Social.Youtube, patch.Youtube)
	apply(&p.Social.Twitter, patch.Twitter)
	apply(&p.Social.Linkedin, patch.Linkedin)
	apply(&p.Social.Facebook, patch.Facebook)
	apply(&p.Social.Instagram, patch.Instagram)

	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	f.record("profile")
	if _, ok := f.byUser[userID]; !ok {
		return utils.ErrNotFound
	}
	delete(f.byUser, userID)
	return nil
}

func (f *fakeProfileRepo) PushExperience(_ context.Context, userID string, exp models.Experience) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	p.Experience = append([]models.Experience{exp}, p.Experience...)
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) PullExperience(_ context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) PushEducation(_ context.Context, userID string, edu models.Education) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	p.Education = append([]models.Education{edu}, p.Education...)
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) PullEducation(_ context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	cp := *p
	return &cp, nil
}

type fakePostRepo struct {
	byUser map[string][]models.Post
	calls  *[]string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byUser: map[string][]models.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, p *models.Post) error {
	f.byUser[p.UserID] = append(f.byUser[p.UserID], *p)
	return nil
}

func (f *fakePostRepo) CountByUserID(_ context.Context, userID string) (int64, error) {
	return int64(len(f.byUser[userID])), nil
}

func (f *fakePostRepo) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, "posts")
	}
	n := int64(len(f.byUser[userID]))
	delete(f.byUser, userID)
	return n, nil
}

type fakeUserRepo struct {
	byID  map[string]models.User
	calls *[]string
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]models.User{}}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) ListByIDs(_ context.Context, ids []string) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) DeleteByID(_ context.Context, id string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "user")
	}
	if _, ok := f.byID[id]; !ok {
		return utils.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

var errBoom = errors.New("boom")
