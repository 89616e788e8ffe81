package rooms

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/validation"
)

// MaxPageSize is the largest page the service returns.
const MaxPageSize = 100

// ListOptions selects a page. Zero values are left out of the query.
type ListOptions struct {
	Limit         int    `validate:"gte=0,lte=100"`
	EndingBefore  string `validate:"omitempty,max=128"`
	StartingAfter string `validate:"omitempty,max=128"`
	// Strict fails with ErrRequiresPagination instead of returning a page
	// that does not hold every room.
	Strict bool
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.EndingBefore != "" {
		q.Set("ending_before", o.EndingBefore)
	}
	if o.StartingAfter != "" {
		q.Set("starting_after", o.StartingAfter)
	}
	return q
}

type deleteResponse struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

func validateName(name string) error {
	if err := validation.Default().Var(name, "roomname"); err != nil {
		return errors.Newf(daily.ErrValidation, "invalid room name %q", name)
	}
	return nil
}

func roomPath(name string) string {
	return "/rooms/" + url.PathEscape(name)
}

func Get(ctx context.Context, d daily.Doer, name string) (*Room, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	var room Room
	if err := d.Do(ctx, daily.Request{Method: http.MethodGet, Path: roomPath(name)}, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Delete removes the room. A missing room is an *APIError; see daily.IsNotFound.
func Delete(ctx context.Context, d daily.Doer, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	var resp deleteResponse
	if err := d.Do(ctx, daily.Request{Method: http.MethodDelete, Path: roomPath(name)}, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return errors.Newf(daily.ErrTransport, "room %s was not reported deleted", name)
	}
	return nil
}

// List returns one page of rooms, oldest first.
func List(ctx context.Context, d daily.Doer, opts ListOptions) (*Page, error) {
	if err := validation.Default().Struct(opts); err != nil {
		return nil, errors.Newf(daily.ErrValidation, "invalid list options: %s", validation.Summary(err))
	}

	var page Page
	err := d.Do(ctx, daily.Request{
		Method: http.MethodGet,
		Path:   "/rooms",
		Query:  opts.query(),
	}, &page)
	if err != nil {
		return nil, err
	}
	if opts.Strict && !page.Complete() {
		return nil, errors.Newf(daily.ErrRequiresPagination,
			"listing holds %d of %d rooms", len(page.Data), page.TotalCount)
	}
	return &page, nil
}

// ListAll walks starting_after cursors until a short page and returns every room.
func ListAll(ctx context.Context, d daily.Doer) ([]Room, error) {
	var (
		all  []Room
		opts = ListOptions{Limit: MaxPageSize}
	)
	for {
		page, err := List(ctx, d, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if len(page.Data) < opts.Limit || len(all) >= page.TotalCount {
			return all, nil
		}
		opts.StartingAfter = page.Data[len(page.Data)-1].ID
	}
}
