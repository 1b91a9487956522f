package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/internal/models"
	"github.com/devlinkhq/devlink/internal/utils"
)

func newTestService() (ProfileService, *fakeProfileRepo, *fakePostRepo, *fakeUserRepo) {
	profiles := newFakeProfileRepo()
	posts := newFakePostRepo()
	users := newFakeUserRepo()
	return NewProfileService(profiles, posts, users), profiles, posts, users
}

func strptr(s string) *string { return &s }

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"node", "react", "express"}, SplitSkills("node, react , express"))
	assert.Equal(t, []string{"go"}, SplitSkills("go"))
	assert.Empty(t, SplitSkills("  , ,"))
}

func TestUpsert_CreatesWithTrimmedSkills(t *testing.T) {
	svc, _, _, _ := newTestService()

	p, err := svc.Upsert(context.Background(), "u1", UpsertProfileInput{
		Status: "Developer",
		Skills: "node, react , express",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"node", "react", "express"}, p.Skills)
}

func TestUpsert_UpdatesInPlaceAndKeepsOmittedFields(t *testing.T) {
	svc, profiles, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{
		Status:  "Developer",
		Skills:  "go",
		Company: strptr("Acme"),
		Website: strptr("https://acme.dev"),
	})
	require.NoError(t, err)

	p, err := svc.Upsert(ctx, "u1", UpsertProfileInput{
		Status:   "Senior Developer",
		Skills:   "go, mongodb",
		Location: strptr("Lisbon"),
	})
	require.NoError(t, err)

	// one profile per user, not a duplicate
	assert.Len(t, profiles.byUser, 1)

	assert.Equal(t, "Senior Developer", p.Status)
	assert.Equal(t, []string{"go", "mongodb"}, p.Skills)
	assert.Equal(t, "Lisbon", p.Location)
	// omitted fields keep their prior values
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "https://acme.dev", p.Website)
}

func TestUpsert_RequiresStatusAndSkills(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Skills: "go"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Developer", Skills: " , "})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestGetMe_JoinsOwner(t *testing.T) {
	svc, _, _, users := newTestService()
	ctx := context.Background()

	users.byID["u1"] = models.User{ID: "u1", Name: "Ada", Avatar: "https://g/ada"}
	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	view, err := svc.GetMe(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, view.User)
	assert.Equal(t, "Ada", view.User.Name)
	assert.Equal(t, "https://g/ada", view.User.Avatar)
}

func TestGetMe_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetMe(context.Background(), "nobody")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Equal(t, "There is no profile for this user", utils.Message(err, ""))
}

func TestGetByUserID_AbsentOrMalformedIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.GetByUserID(ctx, "11111111-1111-1111-1111-111111111111")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Equal(t, "Profile not found", utils.Message(err, ""))

	// a syntactically bogus id falls out the same way
	_, err = svc.GetByUserID(ctx, "!!not-an-id!!")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestList_JoinsOwners(t *testing.T) {
	svc, _, _, users := newTestService()
	ctx := context.Background()

	users.byID["u1"] = models.User{ID: "u1", Name: "Ada", Avatar: "a"}
	users.byID["u2"] = models.User{ID: "u2", Name: "Bob", Avatar: "b"}
	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "u2", UpsertProfileInput{Status: "Dev", Skills: "rust"})
	require.NoError(t, err)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	names := map[string]string{}
	for _, v := range views {
		require.NotNil(t, v.User)
		names[v.UserID] = v.User.Name
	}
	assert.Equal(t, map[string]string{"u1": "Ada", "u2": "Bob"}, names)
}

func TestAddExperience_PrependsNewest(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, "u1", ExperienceInput{Title: "Junior", Company: "Acme", From: "2019-01-01"})
	require.NoError(t, err)
	p, err := svc.AddExperience(ctx, "u1", ExperienceInput{Title: "Senior", Company: "Acme", From: "2022-01-01"})
	require.NoError(t, err)

	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Senior", p.Experience[0].Title)
	assert.Equal(t, "Junior", p.Experience[1].Title)
	assert.NotEqual(t, p.Experience[0].ID, p.Experience[1].ID)
}

func TestAddExperience_NoProfile(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.AddExperience(context.Background(), "u1", ExperienceInput{Title: "x", Company: "y", From: "z"})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestRemoveExperience_MissingIDIsNoop(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	before, err := svc.AddExperience(ctx, "u1", ExperienceInput{Title: "Junior", Company: "Acme", From: "2019"})
	require.NoError(t, err)

	// valid hex that matches nothing
	p, err := svc.RemoveExperience(ctx, "u1", "bbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, before.Experience, p.Experience)

	// malformed id removes nothing either
	p, err = svc.RemoveExperience(ctx, "u1", "definitely-not-hex")
	require.NoError(t, err)
	assert.Equal(t, before.Experience, p.Experience)
}

func TestRemoveExperience_RemovesByID(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	_, err = svc.AddExperience(ctx, "u1", ExperienceInput{Title: "Junior", Company: "Acme", From: "2019"})
	require.NoError(t, err)
	p, err := svc.AddExperience(ctx, "u1", ExperienceInput{Title: "Senior", Company: "Acme", From: "2022"})
	require.NoError(t, err)

	target := p.Experience[1] // "Junior"
	p, err = svc.RemoveExperience(ctx, "u1", target.ID.Hex())
	require.NoError(t, err)

	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Senior", p.Experience[0].Title)
}

func TestAddRemoveEducation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	_, err = svc.AddEducation(ctx, "u1", EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015"})
	require.NoError(t, err)
	p, err := svc.AddEducation(ctx, "u1", EducationInput{School: "CMU", Degree: "MSc", FieldOfStudy: "CS", From: "2019"})
	require.NoError(t, err)

	require.Len(t, p.Education, 2)
	assert.Equal(t, "CMU", p.Education[0].School)

	p, err = svc.RemoveEducation(ctx, "u1", p.Education[0].ID.Hex())
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "MIT", p.Education[0].School)
}

func TestDeleteAccount_CascadesPostsProfileUser(t *testing.T) {
	svc, profiles, posts, users := newTestService()
	ctx := context.Background()

	var calls []string
	profiles.calls = &calls
	posts.calls = &calls
	users.calls = &calls

	users.byID["u1"] = models.User{ID: "u1", Name: "Ada"}
	_, err := svc.Upsert(ctx, "u1", UpsertProfileInput{Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	require.NoError(t, posts.Create(ctx, &models.Post{UserID: "u1", Text: "hello"}))
	require.NoError(t, posts.Create(ctx, &models.Post{UserID: "u1", Text: "world"}))

	require.NoError(t, svc.DeleteAccount(ctx, "u1"))

	assert.Equal(t, []string{"posts", "profile", "user"}, calls)

	n, _ := posts.CountByUserID(ctx, "u1")
	assert.Zero(t, n)
	_, err = svc.GetMe(ctx, "u1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	_, err = users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteAccount_NoProfileStillDeletesUser(t *testing.T) {
	svc, _, _, users := newTestService()
	ctx := context.Background()

	users.byID["u1"] = models.User{ID: "u1"}

	require.NoError(t, svc.DeleteAccount(ctx, "u1"))
	_, err := users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
