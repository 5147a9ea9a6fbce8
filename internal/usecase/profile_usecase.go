package usecase

import (
	"context"
	"errors"
	"strings"

	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/apperror"
	"go-devnetwork-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const profileListCacheKey = "profiles:all"

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	validate    *validator.Validate
	listCache   *gocache.Cache
}

func NewProfileUsecase(
	profileRepo domain.ProfileRepository,
	userRepo domain.UserRepository,
	validate *validator.Validate,
	listCache *gocache.Cache,
) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		validate:    validate,
		listCache:   listCache,
	}
}

func (u *profileUsecase) GetOwnProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("There is no profile for this user")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// UpsertProfile creates the profile on first write and updates it in
// place afterwards. Only fields present in the patch are changed; the
// merge is the single place a patch field maps to a profile field.
func (u *profileUsecase) UpsertProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		existing = &domain.Profile{UserID: userID}
	}

	applyPatch(existing, patch)

	updated, err := u.profileRepo.Upsert(ctx, existing)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.listCache.Flush()
	return updated, nil
}

func (u *profileUsecase) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	if cached, ok := u.listCache.Get(profileListCacheKey); ok {
		return cached.([]domain.Profile), nil
	}

	profiles, err := u.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.listCache.Set(profileListCacheKey, profiles, gocache.DefaultExpiration)
	return profiles, nil
}

func (u *profileUsecase) GetProfileByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// AddExperience prepends a new entry with a fresh id and returns the
// updated profile.
func (u *profileUsecase) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	if err := u.validate.Struct(exp); err != nil {
		return nil, apperror.Validation(validation.Messages(err)...)
	}

	exp.ID = uuid.NewString()
	if err := u.profileRepo.AddExperience(ctx, userID, &exp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("There is no profile for this user")
		}
		return nil, apperror.Internal(err)
	}

	u.listCache.Flush()
	return u.GetOwnProfile(ctx, userID)
}

// RemoveExperience rejects unknown entry ids without touching the list.
func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	if err := u.profileRepo.RemoveExperience(ctx, userID, expID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Experience not found")
		}
		return nil, apperror.Internal(err)
	}

	u.listCache.Flush()
	return u.GetOwnProfile(ctx, userID)
}

func (u *profileUsecase) AddEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	if err := u.validate.Struct(edu); err != nil {
		return nil, apperror.Validation(validation.Messages(err)...)
	}

	edu.ID = uuid.NewString()
	if err := u.profileRepo.AddEducation(ctx, userID, &edu); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("There is no profile for this user")
		}
		return nil, apperror.Internal(err)
	}

	u.listCache.Flush()
	return u.GetOwnProfile(ctx, userID)
}

// RemoveEducation keys off the education entry id only; an experience id
// never matches here.
func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	if err := u.profileRepo.RemoveEducation(ctx, userID, eduID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Education not found")
		}
		return nil, apperror.Internal(err)
	}

	u.listCache.Flush()
	return u.GetOwnProfile(ctx, userID)
}

// DeleteAccount removes the profile, then the user. The two deletes are
// idempotent by id, so a partial failure is safe to retry.
func (u *profileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}

	u.listCache.Flush()
	return nil
}

// applyPatch merges the supplied fields into the profile. Nil pointers
// leave the current value alone.
func applyPatch(p *domain.Profile, patch domain.ProfilePatch) {
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.GithubUsername != nil {
		p.GithubUsername = *patch.GithubUsername
	}
	if patch.Skills != nil {
		p.Skills = SplitSkills(*patch.Skills)
	}

	social := map[string]*string{
		"youtube":   patch.Youtube,
		"twitter":   patch.Twitter,
		"facebook":  patch.Facebook,
		"linkedin":  patch.Linkedin,
		"instagram": patch.Instagram,
	}
	for platform, val := range social {
		if val == nil {
			continue
		}
		if p.Social == nil {
			p.Social = map[string]string{}
		}
		p.Social[platform] = *val
	}
}

// SplitSkills normalizes comma-separated skill input into an ordered
// list of trimmed tokens.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
