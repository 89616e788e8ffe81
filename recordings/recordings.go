// Package recordings lists, inspects and removes cloud recordings, and hands
// out time-limited download links.
package recordings

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
)

type Status string

const (
	StatusFinished   Status = "finished"
	StatusInProgress Status = "in-progress"
	StatusCanceled   Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusFinished, StatusInProgress, StatusCanceled:
		return true
	}
	return false
}

type Recording struct {
	ID       uuid.UUID `json:"id"`
	RoomName string    `json:"room_name"`
	// StartTS is a unix timestamp in seconds.
	StartTS int64  `json:"start_ts"`
	Status  Status `json:"status"`
	// MaxParticipants is the peak number of participants during the session.
	MaxParticipants int `json:"max_participants"`
	// Duration in seconds, approximate. Not reported while in progress.
	Duration         *int      `json:"duration"`
	S3Key            string    `json:"s3key"`
	MeetingSessionID uuid.UUID `json:"mtgSessionId"`
}

func (r *Recording) StartedAt() time.Time {
	return time.Unix(r.StartTS, 0)
}

// Page is one window of a listing. TotalCount counts every match.
type Page struct {
	TotalCount int         `json:"total_count"`
	Data       []Recording `json:"data"`
}

func recordingPath(id uuid.UUID) string {
	return "/recordings/" + id.String()
}

func requireID(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New(daily.ErrValidation, "recording id is required")
	}
	return nil
}

func Get(ctx context.Context, d daily.Doer, id uuid.UUID) (*Recording, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	var rec Recording
	if err := d.Do(ctx, daily.Request{Method: http.MethodGet, Path: recordingPath(id)}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type deleteResponse struct {
	ID      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}

// Delete removes the recording and its stored media.
func Delete(ctx context.Context, d daily.Doer, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}

	var resp deleteResponse
	if err := d.Do(ctx, daily.Request{Method: http.MethodDelete, Path: recordingPath(id)}, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return errors.Newf(daily.ErrTransport, "recording %s was not reported deleted", id)
	}
	return nil
}
