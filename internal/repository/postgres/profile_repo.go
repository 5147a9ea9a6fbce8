package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-devnetwork-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `
	p.id, p.user_id, u.name, u.avatar,
	COALESCE(p.company, ''), COALESCE(p.website, ''), COALESCE(p.location, ''),
	COALESCE(p.bio, ''), COALESCE(p.status, ''), COALESCE(p.github_username, ''),
	p.skills, p.social, p.created_at, p.updated_at`

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
	          FROM profiles p JOIN users u ON u.id = p.user_id
	          WHERE p.user_id = $1`

	profile, err := r.scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadSubLists(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
	          FROM profiles p JOIN users u ON u.id = p.user_id
	          ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range profiles {
		if err := r.loadSubLists(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// Upsert writes the whole document in a single statement, so two
// concurrent first-time writes for the same user cannot both create a
// profile: the conflict target turns the loser into an update.
func (r *profileRepo) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	social, err := json.Marshal(profile.Social)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO profiles (user_id, company, website, location, bio, status,
		                      github_username, skills, social, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			updated_at = NOW()`

	_, err = r.db.Exec(ctx, query,
		profile.UserID, profile.Company, profile.Website, profile.Location,
		profile.Bio, profile.Status, profile.GithubUsername,
		pq.Array(profile.Skills), string(social),
	)
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, profile.UserID)
}

// AddExperience resolves the owning profile inside the INSERT itself;
// zero inserted rows means the user has no profile.
func (r *profileRepo) AddExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	query := `
		INSERT INTO experiences (id, profile_id, title, company, location,
		                         from_date, to_date, current, description, created_at)
		SELECT $1, p.id, $2, $3, $4, $5, $6, $7, $8, NOW()
		FROM profiles p WHERE p.user_id = $9`

	tag, err := r.db.Exec(ctx, query,
		exp.ID, exp.Title, exp.Company, exp.Location,
		exp.From, exp.To, exp.Current, exp.Description, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveExperience deletes exactly the entry owned by userID. An unknown
// id affects zero rows and leaves the list untouched.
func (r *profileRepo) RemoveExperience(ctx context.Context, userID, expID string) error {
	query := `
		DELETE FROM experiences e
		USING profiles p
		WHERE e.profile_id = p.id AND p.user_id = $1 AND e.id = $2`

	tag, err := r.db.Exec(ctx, query, userID, expID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	query := `
		INSERT INTO educations (id, profile_id, school, degree, field_of_study,
		                        from_date, to_date, current, description, created_at)
		SELECT $1, p.id, $2, $3, $4, $5, $6, $7, $8, NOW()
		FROM profiles p WHERE p.user_id = $9`

	tag, err := r.db.Exec(ctx, query,
		edu.ID, edu.School, edu.Degree, edu.FieldOfStudy,
		edu.From, edu.To, edu.Current, edu.Description, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) RemoveEducation(ctx context.Context, userID, eduID string) error {
	query := `
		DELETE FROM educations e
		USING profiles p
		WHERE e.profile_id = p.id AND p.user_id = $1 AND e.id = $2`

	tag, err := r.db.Exec(ctx, query, userID, eduID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByUserID is idempotent; experience and education rows go with the
// profile via ON DELETE CASCADE.
func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

func (r *profileRepo) scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var skills []string
	var social []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Avatar,
		&p.Company, &p.Website, &p.Location,
		&p.Bio, &p.Status, &p.GithubUsername,
		pq.Array(&skills), &social, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	p.Skills = skills
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if len(social) > 0 {
		if err := json.Unmarshal(social, &p.Social); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// loadSubLists fills experience and education newest-first, the order
// entries are prepended in.
func (r *profileRepo) loadSubLists(ctx context.Context, p *domain.Profile) error {
	expQuery := `SELECT id, title, company, COALESCE(location, ''), from_date, to_date,
	                    current, COALESCE(description, '')
	             FROM experiences WHERE profile_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.db.Query(ctx, expQuery, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	p.Experience = []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		var from time.Time
		var to *time.Time
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &from, &to, &e.Current, &e.Description); err != nil {
			return err
		}
		e.From = from
		e.To = to
		p.Experience = append(p.Experience, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eduQuery := `SELECT id, school, degree, field_of_study, from_date, to_date,
	                    current, COALESCE(description, '')
	             FROM educations WHERE profile_id = $1 ORDER BY created_at DESC, id`
	eduRows, err := r.db.Query(ctx, eduQuery, p.ID)
	if err != nil {
		return err
	}
	defer eduRows.Close()

	p.Education = []domain.Education{}
	for eduRows.Next() {
		var e domain.Education
		var from time.Time
		var to *time.Time
		if err := eduRows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &from, &to, &e.Current, &e.Description); err != nil {
			return err
		}
		e.From = from
		e.To = to
		p.Education = append(p.Education, e)
	}
	return eduRows.Err()
}
