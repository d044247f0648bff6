package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/wryteup/jobboard-be/internal/api/domain"
	"github.com/wryteup/jobboard-be/internal/api/model"
	"github.com/wryteup/jobboard-be/shared/postgresql"
)

const jobColumns = `
	id, uuid, title, description, rate, expedite_rate,
	min_words, revision_number, delivery_guarantee, delivery_expedite,
	category_id, user_id, status, declined_reason, created_at, updated_at
`

// JobCursor is a keyset cursor over (created_at, id) for the pending queue.
type JobCursor struct {
	CreatedAt time.Time
	ID        int64
}

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.DB(),
	}
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			uuid, title, description, rate, expedite_rate,
			min_words, revision_number, delivery_guarantee, delivery_expedite,
			category_id, user_id, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13, $14
		)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		job.UUID,
		job.Title,
		job.Description,
		job.Rate,
		job.ExpediteRate,
		job.MinWords,
		job.RevisionNumber,
		job.DeliveryGuarantee,
		job.DeliveryExpedite,
		job.CategoryID,
		job.UserID,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) JobByID(ctx context.Context, id int64) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	err := s.db.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) JobByUUID(ctx context.Context, uuid string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE uuid = $1`

	err := s.db.GetContext(ctx, &job, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by uuid: %w", err)
	}

	return &job, nil
}

// ActiveJobByUUID resolves a job for its public profile. Jobs in any other
// status resolve to ErrJobNotFound, same as an unknown uuid.
func (s *Storage) ActiveJobByUUID(ctx context.Context, uuid string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE uuid = $1 AND status = $2`

	err := s.db.GetContext(ctx, &job, query, uuid, domain.JobStatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get active job by uuid: %w", err)
	}

	return &job, nil
}

func (s *Storage) ListJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC`

	if err := s.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) ListJobsByOwner(ctx context.Context, userID int64) ([]model.Job, error) {
	var jobs []model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	if err := s.db.SelectContext(ctx, &jobs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list jobs by owner: %w", err)
	}

	return jobs, nil
}

// ListPendingJobs returns jobs awaiting review, newest first, keyset
// paginated. Fetches one row beyond limit so the caller can detect more
// results.
func (s *Storage) ListPendingJobs(ctx context.Context, cursor *JobCursor, limit int) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1`
	args := []interface{}{domain.JobStatusInactive}
	argIdx := 2

	if cursor != nil {
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, cursor.CreatedAt, cursor.ID)
		argIdx += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argIdx)
	args = append(args, limit+1)

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) UpdateJobStatus(ctx context.Context, id int64, status, reason string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    declined_reason = NULLIF($2, ''),
		    updated_at = NOW()
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, status, reason, id)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

// UpdateJob writes the editable fields plus status. The uuid, owner, and
// category never change after creation.
func (s *Storage) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET title = $1,
		    description = $2,
		    rate = $3,
		    expedite_rate = $4,
		    min_words = $5,
		    revision_number = $6,
		    delivery_guarantee = $7,
		    delivery_expedite = $8,
		    status = $9,
		    declined_reason = $10,
		    updated_at = NOW()
		WHERE id = $11
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Description,
		job.Rate,
		job.ExpediteRate,
		job.MinWords,
		job.RevisionNumber,
		job.DeliveryGuarantee,
		job.DeliveryExpedite,
		job.Status,
		job.DeclinedReason,
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

func (s *Storage) DeleteJob(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

func (s *Storage) CategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := `SELECT id, title, status, min_rate, min_expedite_rate FROM categories WHERE id = $1`

	err := s.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// ActiveCategoryByID returns the category only when its status is active;
// inactive and unknown ids both return nil.
func (s *Storage) ActiveCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := `
		SELECT id, title, status, min_rate, min_expedite_rate
		FROM categories
		WHERE id = $1 AND status = $2
	`

	err := s.db.GetContext(ctx, &category, query, id, domain.CategoryStatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active category: %w", err)
	}

	return &category, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	query := `SELECT id, email, name, verified, paypal_email, roles FROM users WHERE id = $1`

	err := s.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d not found", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) CreateBanner(ctx context.Context, banner *model.Banner) error {
	query := `
		INSERT INTO banners (link, created_at)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, banner.Link, banner.CreatedAt).Scan(&banner.ID)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

// LinkBanners associates the given pre-uploaded banners with a job. Unknown
// ids are ignored; returns the number of banners actually linked.
func (s *Storage) LinkBanners(ctx context.Context, jobID int64, bannerIDs []int64) (int, error) {
	if len(bannerIDs) == 0 {
		return 0, nil
	}

	query := `UPDATE banners SET job_id = $1 WHERE id = ANY($2) AND job_id IS NULL`

	result, err := s.db.ExecContext(ctx, query, jobID, pq.Array(bannerIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to link banners: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// OrphanBanners returns banner records with no job association.
func (s *Storage) OrphanBanners(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	query := `SELECT id, link, job_id, created_at FROM banners WHERE job_id IS NULL`

	if err := s.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("failed to list orphan banners: %w", err)
	}

	return banners, nil
}

func (s *Storage) DeleteBanner(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}

// JobBanner returns the first banner linked to a job, or nil when the job
// has none.
func (s *Storage) JobBanner(ctx context.Context, jobID int64) (*model.Banner, error) {
	var banner model.Banner
	query := `SELECT id, link, job_id, created_at FROM banners WHERE job_id = $1 ORDER BY id LIMIT 1`

	err := s.db.GetContext(ctx, &banner, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job banner: %w", err)
	}

	return &banner, nil
}
