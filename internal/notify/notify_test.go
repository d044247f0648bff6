package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wryteup/jobboard-be/internal/api/model"
)

type capturingPublisher struct {
	bodies       [][]byte
	contentTypes []string
	err          error
}

func (p *capturingPublisher) PublishWithRetry(_ context.Context, body []byte, contentType string) error {
	if p.err != nil {
		return p.err
	}
	p.bodies = append(p.bodies, body)
	p.contentTypes = append(p.contentTypes, contentType)
	return nil
}

func testSubjects() (*model.User, *model.Job) {
	owner := &model.User{
		ID:    1,
		Email: "owner@example.com",
		Name:  "Pat Owner",
	}
	job := &model.Job{
		ID:    7,
		UUID:  "job-uuid-7",
		Title: "Logo Design Request",
	}
	return owner, job
}

func TestJobPublished(t *testing.T) {
	publisher := &capturingPublisher{}
	notifier := NewNotifier(publisher, slog.New(slog.DiscardHandler))
	owner, job := testSubjects()

	err := notifier.JobPublished(context.Background(), owner, job)
	require.NoError(t, err)

	require.Len(t, publisher.bodies, 1)
	assert.Equal(t, "application/json", publisher.contentTypes[0])

	var msg Message
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &msg))
	assert.Equal(t, TemplateJobPublished, msg.Template)
	assert.Equal(t, "owner@example.com", msg.RecipientEmail)
	assert.Equal(t, "Pat Owner", msg.RecipientName)
	assert.Equal(t, "job-uuid-7", msg.JobUUID)
	assert.Equal(t, "Logo Design Request", msg.JobTitle)
	assert.Empty(t, msg.Reason)
}

func TestJobDeclined(t *testing.T) {
	publisher := &capturingPublisher{}
	notifier := NewNotifier(publisher, slog.New(slog.DiscardHandler))
	owner, job := testSubjects()

	err := notifier.JobDeclined(context.Background(), owner, job, "Rate is below market")
	require.NoError(t, err)

	require.Len(t, publisher.bodies, 1)

	var msg Message
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &msg))
	assert.Equal(t, TemplateJobDeclined, msg.Template)
	assert.Equal(t, "Rate is below market", msg.Reason)
}

func TestPublishFailureSurfaces(t *testing.T) {
	publisher := &capturingPublisher{err: errors.New("broker unavailable")}
	notifier := NewNotifier(publisher, slog.New(slog.DiscardHandler))
	owner, job := testSubjects()

	err := notifier.JobPublished(context.Background(), owner, job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish notification")
}

func TestReasonOmittedFromWireFormat(t *testing.T) {
	body, err := json.Marshal(Message{Template: TemplateJobPublished})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "reason")
}
