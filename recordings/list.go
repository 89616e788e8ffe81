package recordings

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/validation"
)

// ListBuilder builds a GET /recordings query. Unset options are left out.
type ListBuilder struct {
	Limit         *int    `validate:"omitnil,gte=1,lte=100"`
	RoomName      *string `validate:"omitnil,roomname"`
	EndingBefore  *uuid.UUID
	StartingAfter *uuid.UUID
}

func NewList() *ListBuilder {
	return &ListBuilder{}
}

// WithLimit sets the page size. The service default and maximum is 100.
func (b *ListBuilder) WithLimit(n int) *ListBuilder {
	b.Limit = &n
	return b
}

// WithEndingBefore pages backwards from the recording with this id.
func (b *ListBuilder) WithEndingBefore(id uuid.UUID) *ListBuilder {
	b.EndingBefore = &id
	return b
}

// WithStartingAfter pages forwards from the recording with this id.
func (b *ListBuilder) WithStartingAfter(id uuid.UUID) *ListBuilder {
	b.StartingAfter = &id
	return b
}

func (b *ListBuilder) WithRoomName(name string) *ListBuilder {
	b.RoomName = &name
	return b
}

func (b *ListBuilder) query() url.Values {
	q := url.Values{}
	if b.Limit != nil {
		q.Set("limit", strconv.Itoa(*b.Limit))
	}
	if b.EndingBefore != nil {
		q.Set("ending_before", b.EndingBefore.String())
	}
	if b.StartingAfter != nil {
		q.Set("starting_after", b.StartingAfter.String())
	}
	if b.RoomName != nil {
		q.Set("room_name", *b.RoomName)
	}
	return q
}

func (b *ListBuilder) List(ctx context.Context, d daily.Doer) (*Page, error) {
	if err := validation.Default().Struct(b); err != nil {
		return nil, errors.Newf(daily.ErrValidation, "invalid recording list options: %s", validation.Summary(err))
	}

	var page Page
	err := d.Do(ctx, daily.Request{
		Method: http.MethodGet,
		Path:   "/recordings",
		Query:  b.query(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
