// Package lifecycle owns the permitted state transitions of a job posting
// (inactive → active/declined, edits forcing re-review, deletion) and the
// authorization rule gating each transition. Handlers translate its typed
// results into HTTP responses; it knows nothing about gin.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wryteup/jobboard-be/internal/api/domain"
	"github.com/wryteup/jobboard-be/internal/api/model"
	"github.com/wryteup/jobboard-be/internal/api/storage"
)

// Banner display size used on job detail views.
const (
	bannerWidth  = 318
	bannerHeight = 180
)

// Store is the persistence surface the lifecycle manager depends on.
// Implemented by storage.Storage; faked in tests.
type Store interface {
	CreateJob(ctx context.Context, job *model.Job) error
	JobByID(ctx context.Context, id int64) (*model.Job, error)
	JobByUUID(ctx context.Context, uuid string) (*model.Job, error)
	ActiveJobByUUID(ctx context.Context, uuid string) (*model.Job, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
	ListJobsByOwner(ctx context.Context, userID int64) ([]model.Job, error)
	ListPendingJobs(ctx context.Context, cursor *storage.JobCursor, limit int) ([]model.Job, error)
	UpdateJobStatus(ctx context.Context, id int64, status, reason string) error
	UpdateJob(ctx context.Context, job *model.Job) error
	DeleteJob(ctx context.Context, id int64) error

	CategoryByID(ctx context.Context, id int64) (*model.Category, error)
	ActiveCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)

	LinkBanners(ctx context.Context, jobID int64, bannerIDs []int64) (int, error)
	OrphanBanners(ctx context.Context) ([]model.Banner, error)
	DeleteBanner(ctx context.Context, id int64) error
	JobBanner(ctx context.Context, jobID int64) (*model.Banner, error)
}

// Notifier delivers owner-facing notifications. Fire-and-forget: the
// lifecycle manager logs failures and moves on.
type Notifier interface {
	JobPublished(ctx context.Context, owner *model.User, job *model.Job) error
	JobDeclined(ctx context.Context, owner *model.User, job *model.Job, reason string) error
}

// FileStore removes banner files during the orphan sweep.
type FileStore interface {
	Delete(path string) error
}

// JobInput carries the create/save fields. Pointers distinguish absent
// values from zeroes for the validation rules.
type JobInput struct {
	Title             string
	Description       string
	Rate              *float64
	ExpediteRate      *float64
	MinWords          *int
	RevisionNumber    *int
	DeliveryGuarantee *int
	DeliveryExpedite  *int
	CategoryID        *int64
	BannerIDs         []int64
}

// JobDetails is the enriched job view returned by Show.
type JobDetails struct {
	Job          *model.Job
	CategoryName string
	Image        string
	HasPaypal    bool
}

// PendingPage is one keyset page of the review queue.
type PendingPage struct {
	Jobs       []model.Job
	NextCursor *storage.JobCursor
}

type Manager struct {
	store    Store
	notifier Notifier
	files    FileStore
	logger   *slog.Logger
}

func NewManager(store Store, notifier Notifier, files FileStore, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		files:    files,
		logger:   logger,
	}
}

// canManage is the guard on activate/decline/delete/save: the owner, or an
// actor holding an elevated role.
func canManage(actor domain.Actor, job *model.Job) bool {
	return actor.ID == job.UserID || actor.Elevated()
}

// Create validates the actor's account preconditions and the input fields,
// then inserts the job in inactive status, links the referenced banners, and
// runs the orphan sweep.
//
// Precondition failures (no paypal account, unverified email) are checked
// before field validation: an unprepared account is refused outright no
// matter what it submits.
func (m *Manager) Create(ctx context.Context, actor domain.Actor, in JobInput) (*model.Job, error) {
	user, err := m.store.UserByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}

	if !user.HasPaypal() {
		return nil, domain.ErrPaypalNotSet
	}
	if !user.Verified {
		return nil, domain.ErrEmailNotVerified
	}

	category, fieldErrs, err := m.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if fieldErrs == nil {
		fieldErrs = domain.FieldErrors{}
	}

	validateJobFields(in, category, fieldErrs)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	now := time.Now()
	job := &model.Job{
		UUID:              uuid.NewString(),
		Title:             in.Title,
		Description:       in.Description,
		Rate:              nullFloat(in.Rate),
		ExpediteRate:      nullFloat(in.ExpediteRate),
		MinWords:          *in.MinWords,
		RevisionNumber:    *in.RevisionNumber,
		DeliveryGuarantee: *in.DeliveryGuarantee,
		DeliveryExpedite:  nullInt(in.DeliveryExpedite),
		CategoryID:        category.ID,
		UserID:            actor.ID,
		Status:            domain.JobStatusInactive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := m.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	linked, err := m.store.LinkBanners(ctx, job.ID, in.BannerIDs)
	if err != nil {
		// The job exists; a failed link only means its banners stay orphaned
		// until the next sweep.
		m.logger.Error("Failed to link banners",
			slog.Int64("job_id", job.ID),
			slog.Any("error", err),
		)
	} else if linked > 0 {
		m.logger.Info("Banners linked to job",
			slog.Int64("job_id", job.ID),
			slog.Int("linked", linked),
		)
	}

	m.sweepOrphanBanners(ctx)

	return job, nil
}

// resolveCategory looks up the submitted category and reports the field
// error when it is missing or not active.
func (m *Manager) resolveCategory(ctx context.Context, id *int64) (*model.Category, domain.FieldErrors, error) {
	fieldErrs := domain.FieldErrors{}

	if id == nil {
		fieldErrs["category"] = "category is required"
		return nil, fieldErrs, nil
	}

	category, err := m.store.ActiveCategoryByID(ctx, *id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		fieldErrs["category"] = "category must reference an active category"
		return nil, fieldErrs, nil
	}

	return category, fieldErrs, nil
}

// List returns every job for elevated actors, and only owned jobs for
// everyone else.
func (m *Manager) List(ctx context.Context, actor domain.Actor) ([]model.Job, error) {
	if actor.Elevated() {
		return m.store.ListJobs(ctx)
	}
	return m.store.ListJobsByOwner(ctx, actor.ID)
}

// Pending returns one page of the review queue (jobs in inactive status).
// Route-level scoping to elevated roles is assumed.
func (m *Manager) Pending(ctx context.Context, cursor *storage.JobCursor, pageSize int) (*PendingPage, error) {
	jobs, err := m.store.ListPendingJobs(ctx, cursor, pageSize)
	if err != nil {
		return nil, err
	}

	page := &PendingPage{Jobs: jobs}
	if len(jobs) > pageSize {
		page.Jobs = jobs[:pageSize]
		last := page.Jobs[len(page.Jobs)-1]
		page.NextCursor = &storage.JobCursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}
	}

	return page, nil
}

// Show returns the job enriched with its category title, a display-sized
// banner reference, and the owner's payment-account status.
func (m *Manager) Show(ctx context.Context, id int64) (*JobDetails, error) {
	job, err := m.store.JobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &JobDetails{Job: job}

	category, err := m.store.CategoryByID(ctx, job.CategoryID)
	if err != nil {
		return nil, err
	}
	if category != nil {
		details.CategoryName = category.Title
	}

	banner, err := m.store.JobBanner(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if banner != nil {
		details.Image = fmt.Sprintf("/storage/%s?w=%d&h=%d", banner.Link, bannerWidth, bannerHeight)
	}

	owner, err := m.store.UserByID(ctx, job.UserID)
	if err != nil {
		return nil, err
	}
	details.HasPaypal = owner.HasPaypal()

	return details, nil
}

// Activate publishes a pending job and notifies its owner. Unauthorized
// actors get ErrPermissionDenied with no state change.
func (m *Manager) Activate(ctx context.Context, actor domain.Actor, id int64) error {
	job, err := m.store.JobByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManage(actor, job) {
		return domain.ErrPermissionDenied
	}

	if err := m.store.UpdateJobStatus(ctx, job.ID, domain.JobStatusActive, ""); err != nil {
		return err
	}

	m.notifyOwner(ctx, job, func(owner *model.User) error {
		return m.notifier.JobPublished(ctx, owner, job)
	})

	return nil
}

// Decline rejects a pending job with a free-text reason and notifies its
// owner.
func (m *Manager) Decline(ctx context.Context, actor domain.Actor, id int64, reason string) error {
	job, err := m.store.JobByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManage(actor, job) {
		return domain.ErrPermissionDenied
	}

	if err := m.store.UpdateJobStatus(ctx, job.ID, domain.JobStatusDeclined, reason); err != nil {
		return err
	}

	m.notifyOwner(ctx, job, func(owner *model.User) error {
		return m.notifier.JobDeclined(ctx, owner, job, reason)
	})

	return nil
}

// Delete permanently removes a job.
func (m *Manager) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	job, err := m.store.JobByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManage(actor, job) {
		return domain.ErrPermissionDenied
	}

	return m.store.DeleteJob(ctx, job.ID)
}

// Profile resolves a job by public uuid for its profile page. Only active
// jobs resolve; everything else is a uniform not-found.
func (m *Manager) Profile(ctx context.Context, jobUUID string) (*model.Job, error) {
	return m.store.ActiveJobByUUID(ctx, jobUUID)
}

// ForEdit loads a job for the editor. Unknown uuid and insufficient
// permission both surface as not-found, so the editor URL leaks nothing.
func (m *Manager) ForEdit(ctx context.Context, actor domain.Actor, jobUUID string) (*model.Job, error) {
	job, err := m.store.JobByUUID(ctx, jobUUID)
	if err != nil {
		return nil, err
	}

	if !canManage(actor, job) {
		return nil, domain.ErrJobNotFound
	}

	return job, nil
}

// Save applies editor changes. Any edit — whatever the prior status — forces
// the job back to inactive for re-review and clears a previous decline
// reason. Rate floors come from the job's stored category; the category
// itself is not editable.
func (m *Manager) Save(ctx context.Context, actor domain.Actor, jobUUID string, in JobInput) (*model.Job, error) {
	job, err := m.store.JobByUUID(ctx, jobUUID)
	if err != nil {
		return nil, err
	}

	if !canManage(actor, job) {
		return nil, domain.ErrPermissionDenied
	}

	category, err := m.store.CategoryByID(ctx, job.CategoryID)
	if err != nil {
		return nil, err
	}

	fieldErrs := domain.FieldErrors{}
	validateJobFields(in, category, fieldErrs)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	job.Title = in.Title
	job.Description = in.Description
	job.Rate = nullFloat(in.Rate)
	job.ExpediteRate = nullFloat(in.ExpediteRate)
	job.MinWords = *in.MinWords
	job.RevisionNumber = *in.RevisionNumber
	job.DeliveryGuarantee = *in.DeliveryGuarantee
	job.DeliveryExpedite = nullInt(in.DeliveryExpedite)
	job.Status = domain.JobStatusInactive
	job.DeclinedReason = nullString("")
	job.UpdatedAt = time.Now()

	if err := m.store.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// notifyOwner loads the job's owner and runs the send. Notification is
// fire-and-forget: failures are logged, never surfaced.
func (m *Manager) notifyOwner(ctx context.Context, job *model.Job, send func(*model.User) error) {
	owner, err := m.store.UserByID(ctx, job.UserID)
	if err != nil {
		m.logger.Error("Failed to load job owner for notification",
			slog.Int64("job_id", job.ID),
			slog.Any("error", err),
		)
		return
	}

	if err := send(owner); err != nil {
		m.logger.Error("Failed to send notification",
			slog.Int64("job_id", job.ID),
			slog.String("recipient", owner.Email),
			slog.Any("error", err),
		)
	}
}

// sweepOrphanBanners purges banner records with no job association, deleting
// the backing file and the record. Best effort: per-item failures are logged
// and the sweep continues.
func (m *Manager) sweepOrphanBanners(ctx context.Context) {
	banners, err := m.store.OrphanBanners(ctx)
	if err != nil {
		m.logger.Error("Orphan banner sweep failed to list banners",
			slog.Any("error", err),
		)
		return
	}

	for _, banner := range banners {
		if err := m.files.Delete(banner.Link); err != nil {
			m.logger.Warn("Failed to delete orphan banner file",
				slog.Int64("banner_id", banner.ID),
				slog.String("link", banner.Link),
				slog.Any("error", err),
			)
		}
		if err := m.store.DeleteBanner(ctx, banner.ID); err != nil {
			m.logger.Warn("Failed to delete orphan banner record",
				slog.Int64("banner_id", banner.ID),
				slog.Any("error", err),
			)
		}
	}
}
