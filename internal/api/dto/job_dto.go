package dto

// CreateJobRequest is the creation payload. Numeric fields are pointers so
// the lifecycle validation can tell "absent" from zero; all rule checking
// happens there, not in binding tags.
type CreateJobRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Rate              *float64 `json:"rate"`
	ExpediteRate      *float64 `json:"expeditate_rate"`
	MinWords          *int     `json:"minWords"`
	RevisionNumber    *int     `json:"revision_number"`
	DeliveryGuarantee *int     `json:"delivery_guarantee"`
	DeliveryExpedite  *int     `json:"delivery_expeditate"`
	Category          *int64   `json:"category"`
	Banner            []int64  `json:"banner"`
}

// SaveJobRequest is the editor payload. The category is not editable; rate
// floors are resolved from the job's stored category.
type SaveJobRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Rate              *float64 `json:"rate"`
	ExpediteRate      *float64 `json:"expeditate_rate"`
	MinWords          *int     `json:"minWords"`
	RevisionNumber    *int     `json:"revision_number"`
	DeliveryGuarantee *int     `json:"delivery_guarantee"`
	DeliveryExpedite  *int     `json:"delivery_expeditate"`
}

type DeclineJobRequest struct {
	Reason string `json:"reason"`
}

type ListPendingRequest struct {
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type JobDTO struct {
	ID                int64    `json:"id"`
	UUID              string   `json:"uuid"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Rate              *float64 `json:"rate,omitempty"`
	ExpediteRate      *float64 `json:"expeditate_rate,omitempty"`
	MinWords          int      `json:"minWords"`
	RevisionNumber    int      `json:"revision_number"`
	DeliveryGuarantee int      `json:"delivery_guarantee"`
	DeliveryExpedite  *int     `json:"delivery_expeditate,omitempty"`
	Category          int64    `json:"category"`
	UserID            int64    `json:"user_id"`
	Status            string   `json:"status"`
	DeclinedReason    string   `json:"declined_reason,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// ShowJobResponse is the job detail view: the job enriched with its category
// title, a display-sized banner reference, and the owner's payment status.
type ShowJobResponse struct {
	Job          JobDTO `json:"job"`
	CategoryName string `json:"category_name"`
	Image        string `json:"image,omitempty"`
	HasPaypal    bool   `json:"hasPaypal"`
}

type ListJobsResponse struct {
	Jobs []JobDTO `json:"jobs"`
}

type ListPendingResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// ActionResponse is the flash-style outcome of activate/decline/delete/save.
// Denials use the same shape as successes; only the message differs.
type ActionResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

type UploadBannerResponse struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}
