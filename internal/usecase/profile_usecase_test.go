package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
)

// fakeProfileRepo is an in-memory ProfileRepository for exercising the
// create/update/remove sequences end to end.
type fakeProfileRepo struct {
	profiles  map[string]*domain.Profile
	listCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.Experience = append([]domain.Experience{}, p.Experience...)
	cp.Education = append([]domain.Education{}, p.Education...)
	return &cp, nil
}

func (f *fakeProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	f.listCalls++
	out := []domain.Profile{}
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	cp := *profile
	if existing, ok := f.profiles[profile.UserID]; ok {
		cp.Experience = existing.Experience
		cp.Education = existing.Education
	}
	f.profiles[profile.UserID] = &cp
	return f.GetByUserID(ctx, profile.UserID)
}

func (f *fakeProfileRepo) AddExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Experience = append([]domain.Experience{*exp}, p.Experience...)
	return nil
}

func (f *fakeProfileRepo) RemoveExperience(ctx context.Context, userID, expID string) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, e := range p.Experience {
		if e.ID == expID {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProfileRepo) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Education = append([]domain.Education{*edu}, p.Education...)
	return nil
}

func (f *fakeProfileRepo) RemoveEducation(ctx context.Context, userID, eduID string) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, e := range p.Education {
		if e.ID == eduID {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	delete(f.profiles, userID)
	return nil
}

func strPtr(s string) *string { return &s }

func newProfileUsecase(repo domain.ProfileRepository, users domain.UserRepository) domain.ProfileUsecase {
	return usecase.NewProfileUsecase(repo, users, validator.New(), gocache.New(time.Minute, time.Minute))
}

func TestUpsertProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates lazily then updates in place", func(t *testing.T) {
		repo := newFakeProfileRepo()
		uc := newProfileUsecase(repo, nil)

		created, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
			Status:  strPtr("Developer"),
			Skills:  strPtr("Go, SQL"),
			Company: strPtr("Acme"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Developer", created.Status)
		assert.Equal(t, []string{"Go", "SQL"}, created.Skills)

		updated, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
			Status: strPtr("Senior Developer"),
			Skills: strPtr("Go, SQL"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Senior Developer", updated.Status)
		// Absent patch fields stay untouched
		assert.Equal(t, "Acme", updated.Company)
	})

	t.Run("is idempotent under repeated identical input", func(t *testing.T) {
		repo := newFakeProfileRepo()
		uc := newProfileUsecase(repo, nil)

		patch := domain.ProfilePatch{
			Status:   strPtr("Developer"),
			Skills:   strPtr("a, b ,c"),
			Website:  strPtr("https://example.com"),
			Twitter:  strPtr("https://twitter.com/dev"),
			Linkedin: strPtr("https://linkedin.com/in/dev"),
		}

		first, err := uc.UpsertProfile(ctx, "user-1", patch)
		assert.NoError(t, err)
		second, err := uc.UpsertProfile(ctx, "user-1", patch)
		assert.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, first.Skills)
		assert.Equal(t, first.Skills, second.Skills)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.Website, second.Website)
		assert.Equal(t, first.Social, second.Social)
	})

	t.Run("githubusername lands in its own field", func(t *testing.T) {
		repo := newFakeProfileRepo()
		uc := newProfileUsecase(repo, nil)

		profile, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
			Status:         strPtr("Developer"),
			Skills:         strPtr("Go"),
			GithubUsername: strPtr("octocat"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "octocat", profile.GithubUsername)
		assert.Equal(t, "Developer", profile.Status)
	})

	t.Run("collects only supplied social links", func(t *testing.T) {
		repo := newFakeProfileRepo()
		uc := newProfileUsecase(repo, nil)

		profile, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
			Status:  strPtr("Developer"),
			Skills:  strPtr("Go"),
			Youtube: strPtr("https://youtube.com/@dev"),
		})
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"youtube": "https://youtube.com/@dev"}, profile.Social)
	})
}

func TestGetProfileByUser(t *testing.T) {
	ctx := context.Background()

	repo := newFakeProfileRepo()
	uc := newProfileUsecase(repo, nil)

	_, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
		Status: strPtr("Developer"),
		Skills: strPtr("Go"),
	})
	assert.NoError(t, err)

	t.Run("returns the profile for a known user", func(t *testing.T) {
		profile, err := uc.GetProfileByUser(ctx, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "user-1", profile.UserID)
		assert.Equal(t, "Developer", profile.Status)
	})

	t.Run("unknown and malformed ids both report Profile not found", func(t *testing.T) {
		for _, id := range []string{"user-9", "not-a-real-id!!"} {
			_, err := uc.GetProfileByUser(ctx, id)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "Profile not found")
		}
	})
}

func TestExperienceLifecycle(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (domain.ProfileUsecase, *fakeProfileRepo) {
		repo := newFakeProfileRepo()
		uc := newProfileUsecase(repo, nil)
		_, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
			Status: strPtr("Developer"),
			Skills: strPtr("Go"),
		})
		assert.NoError(t, err)
		return uc, repo
	}

	entry := domain.Experience{
		Title:   "Backend Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("add then remove restores the prior list", func(t *testing.T) {
		uc, _ := seed(t)

		before, err := uc.GetOwnProfile(ctx, "user-1")
		assert.NoError(t, err)

		after, err := uc.AddExperience(ctx, "user-1", entry)
		assert.NoError(t, err)
		assert.Len(t, after.Experience, 1)
		assert.NotEmpty(t, after.Experience[0].ID)

		restored, err := uc.RemoveExperience(ctx, "user-1", after.Experience[0].ID)
		assert.NoError(t, err)
		assert.Equal(t, before.Experience, restored.Experience)
	})

	t.Run("entries are prepended newest-first", func(t *testing.T) {
		uc, _ := seed(t)

		_, err := uc.AddExperience(ctx, "user-1", entry)
		assert.NoError(t, err)

		second := entry
		second.Title = "Staff Engineer"
		profile, err := uc.AddExperience(ctx, "user-1", second)
		assert.NoError(t, err)

		assert.Len(t, profile.Experience, 2)
		assert.Equal(t, "Staff Engineer", profile.Experience[0].Title)
	})

	t.Run("removing an unknown id fails and leaves the list unmodified", func(t *testing.T) {
		uc, repo := seed(t)

		added, err := uc.AddExperience(ctx, "user-1", entry)
		assert.NoError(t, err)

		_, err = uc.RemoveExperience(ctx, "user-1", "no-such-id")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Experience not found")

		current, err := repo.GetByUserID(ctx, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, added.Experience, current.Experience)
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		uc, _ := seed(t)

		_, err := uc.AddExperience(ctx, "user-1", domain.Experience{Location: "Remote"})
		assert.Error(t, err)
	})

	t.Run("adding without a profile fails", func(t *testing.T) {
		repo := newFakeProfileRepo()
		uc := newProfileUsecase(repo, nil)

		_, err := uc.AddExperience(ctx, "user-9", entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "There is no profile for this user")
	})
}

func TestEducationLifecycle(t *testing.T) {
	ctx := context.Background()

	repo := newFakeProfileRepo()
	uc := newProfileUsecase(repo, nil)
	_, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
		Status: strPtr("Developer"),
		Skills: strPtr("Go"),
	})
	assert.NoError(t, err)

	entry := domain.Education{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	added, err := uc.AddEducation(ctx, "user-1", entry)
	assert.NoError(t, err)
	assert.Len(t, added.Education, 1)
	eduID := added.Education[0].ID

	// An experience id never matches an education entry
	expAdded, err := uc.AddExperience(ctx, "user-1", domain.Experience{
		Title:   "Backend Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	expID := expAdded.Experience[0].ID

	_, err = uc.RemoveEducation(ctx, "user-1", expID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Education not found")

	removed, err := uc.RemoveEducation(ctx, "user-1", eduID)
	assert.NoError(t, err)
	assert.Empty(t, removed.Education)
	assert.Len(t, removed.Experience, 1)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	repo := newFakeProfileRepo()
	mockUsers := new(MockUserRepo)
	mockUsers.On("Delete", ctx, "user-1").Return(nil)
	uc := newProfileUsecase(repo, mockUsers)

	_, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
		Status: strPtr("Developer"),
		Skills: strPtr("Go"),
	})
	assert.NoError(t, err)

	assert.NoError(t, uc.DeleteAccount(ctx, "user-1"))
	mockUsers.AssertExpectations(t)

	_, err = uc.GetOwnProfile(ctx, "user-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "There is no profile for this user")
}

func TestListProfilesCache(t *testing.T) {
	ctx := context.Background()

	repo := newFakeProfileRepo()
	uc := newProfileUsecase(repo, nil)

	_, err := uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
		Status: strPtr("Developer"),
		Skills: strPtr("Go"),
	})
	assert.NoError(t, err)

	_, err = uc.ListProfiles(ctx)
	assert.NoError(t, err)
	_, err = uc.ListProfiles(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// Any mutation invalidates the cached list
	_, err = uc.UpsertProfile(ctx, "user-1", domain.ProfilePatch{
		Status: strPtr("Senior Developer"),
		Skills: strPtr("Go"),
	})
	assert.NoError(t, err)

	profiles, err := uc.ListProfiles(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, profiles, 1)
	assert.Equal(t, "Senior Developer", profiles[0].Status)
}
