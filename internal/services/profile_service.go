package services

import (
	"context"
	"errors"
	"strings"

	"github.com/devlinkhq/devlink/internal/models"
	mongorepo "github.com/devlinkhq/devlink/internal/repositories/mongo"
	pgrepo "github.com/devlinkhq/devlink/internal/repositories/postgres"
	"github.com/devlinkhq/devlink/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner is the slice of the identity record surfaced alongside a
// profile.
type Owner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ProfileView is a profile joined with its owner's name and avatar.
type ProfileView struct {
	*models.Profile
	User *Owner `json:"user"`
}

// UpsertProfileInput mirrors the POST /api/profile body. Skills is the
// raw comma-separated string; the service owns turning it into the
// stored list.
type UpsertProfileInput struct {
	Status string
	Skills string

	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string

	Youtube   *string
	Twitter   *string
	Linkedin  *string
	Facebook  *string
	Instagram *string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*ProfileView, error)
	Upsert(ctx context.Context, userID string, in UpsertProfileInput) (*models.Profile, error)
	List(ctx context.Context) ([]ProfileView, error)
	GetByUserID(ctx context.Context, userID string) (*ProfileView, error)
	DeleteAccount(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error)
}

type profileService struct {
	profiles mongorepo.ProfileRepository
	posts    mongorepo.PostRepository
	users    pgrepo.UserRepository
}

func NewProfileService(profiles mongorepo.ProfileRepository, posts mongorepo.PostRepository, users pgrepo.UserRepository) ProfileService {
	return &profileService{profiles: profiles, posts: posts, users: users}
}

// SplitSkills turns the comma-separated input into the stored list:
// each entry trimmed, empty entries dropped.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*ProfileView, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	owner, err := s.ownerOf(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile owner", err)
	}
	return &ProfileView{Profile: p, User: owner}, nil
}

func (s *profileService) Upsert(ctx context.Context, userID string, in UpsertProfileInput) (*models.Profile, error) {
	const op = "ProfileService.Upsert"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Status is required", nil)
	}
	skills := SplitSkills(in.Skills)
	if len(skills) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Skills is required", nil)
	}

	patch := models.ProfilePatch{
		Status:         in.Status,
		Skills:         skills,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Youtube:        in.Youtube,
		Twitter:        in.Twitter,
		Linkedin:       in.Linkedin,
		Facebook:       in.Facebook,
		Instagram:      in.Instagram,
	}

	p, err := s.profiles.Upsert(ctx, userID, patch)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	return p, nil
}

func (s *profileService) List(ctx context.Context) ([]ProfileView, error) {
	const op = "ProfileService.List"

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list profiles", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile owners", err)
	}
	byID := make(map[string]*Owner, len(users))
	for i := range users {
		u := users[i]
		byID[u.ID] = &Owner{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}

	out := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		out = append(out, ProfileView{Profile: &profiles[i], User: byID[profiles[i].UserID]})
	}
	return out, nil
}

// GetByUserID backs the public profile page. A malformed id cannot
// match any stored user_id, so it falls out as not-found rather than a
// validation error.
func (s *profileService) GetByUserID(ctx context.Context, userID string) (*ProfileView, error) {
	const op = "ProfileService.GetByUserID"

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	owner, err := s.ownerOf(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile owner", err)
	}
	return &ProfileView{Profile: p, User: owner}, nil
}

// DeleteAccount cascades posts, then the profile, then the user record.
// The order matters: the later steps rely on the user id, which would
// be gone if the user row went first. The steps are not transactional;
// a failure partway leaves the earlier deletions in place.
func (s *profileService) DeleteAccount(ctx context.Context, userID string) error {
	const op = "ProfileService.DeleteAccount"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if _, err := s.posts.DeleteByUserID(ctx, userID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete posts", err)
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to delete profile", err)
	}
	if err := s.users.DeleteByID(ctx, userID); err != nil && !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to delete user", err)
	}
	return nil
}

func (s *profileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error) {
	const op = "ProfileService.AddExperience"

	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	p, err := s.profiles.PushExperience(ctx, userID, exp)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to add experience", err)
	}
	return p, nil
}

func (s *profileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	const op = "ProfileService.RemoveExperience"

	id, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		// an id that never existed removes nothing
		return s.currentProfile(ctx, op, userID)
	}

	p, err := s.profiles.PullExperience(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to remove experience", err)
	}
	return p, nil
}

func (s *profileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error) {
	const op = "ProfileService.AddEducation"

	edu := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	p, err := s.profiles.PushEducation(ctx, userID, edu)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to add education", err)
	}
	return p, nil
}

func (s *profileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	const op = "ProfileService.RemoveEducation"

	id, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return s.currentProfile(ctx, op, userID)
	}

	p, err := s.profiles.PullEducation(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to remove education", err)
	}
	return p, nil
}

func (s *profileService) currentProfile(ctx context.Context, op, userID string) (*models.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) ownerOf(ctx context.Context, userID string) (*Owner, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Owner{ID: u.ID, Name: u.Name, Avatar: u.Avatar}, nil
}
