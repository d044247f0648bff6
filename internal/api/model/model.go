package model

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Job is a task posting created by a client user. The numeric ID is internal;
// UUID is the public identifier used on profile and editor URLs.
type Job struct {
	ID                int64           `db:"id"`
	UUID              string          `db:"uuid"`
	Title             string          `db:"title"`
	Description       string          `db:"description"`
	Rate              sql.NullFloat64 `db:"rate"`
	ExpediteRate      sql.NullFloat64 `db:"expedite_rate"`
	MinWords          int             `db:"min_words"`
	RevisionNumber    int             `db:"revision_number"`
	DeliveryGuarantee int             `db:"delivery_guarantee"`
	DeliveryExpedite  sql.NullInt64   `db:"delivery_expedite"`
	CategoryID        int64           `db:"category_id"`
	UserID            int64           `db:"user_id"`
	Status            string          `db:"status"`
	DeclinedReason    sql.NullString  `db:"declined_reason"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// Banner is an image asset attached to a job listing. Banners are uploaded
// before the job exists and linked at creation time; JobID stays NULL until
// then, and unlinked records are purged by the orphan sweep.
type Banner struct {
	ID        int64         `db:"id"`
	Link      string        `db:"link"`
	JobID     sql.NullInt64 `db:"job_id"`
	CreatedAt time.Time     `db:"created_at"`
}

// Category groups jobs and carries the per-category rate floors. Only active
// categories are valid selections for new jobs.
type Category struct {
	ID              int64   `db:"id"`
	Title           string  `db:"title"`
	Status          string  `db:"status"`
	MinRate         float64 `db:"min_rate"`
	MinExpediteRate float64 `db:"min_expedite_rate"`
}

type User struct {
	ID          int64          `db:"id"`
	Email       string         `db:"email"`
	Name        string         `db:"name"`
	Verified    bool           `db:"verified"`
	PaypalEmail sql.NullString `db:"paypal_email"`
	Roles       pq.StringArray `db:"roles"`
}

// HasPaypal reports whether the user has a payment account configured,
// which is a precondition for creating jobs.
func (u *User) HasPaypal() bool {
	return u.PaypalEmail.Valid && u.PaypalEmail.String != ""
}
