package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/recordings"
)

func parseRecordingID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrapf(daily.ErrValidation, err, "recording id %q", s)
	}
	return id, nil
}

func (c *cli) recordingsList(ctx context.Context, args []string) error {
	fs := newCommandFlags("recordings list")
	var (
		room          = fs.String("room", "", "only recordings of this room")
		limit         = fs.Int("limit", 0, "page size, at most 100")
		startingAfter = fs.String("starting-after", "", "recording id to page forward from")
		endingBefore  = fs.String("ending-before", "", "recording id to page backward from")
	)
	if err := parse(fs, args, 0, "[flags]"); err != nil {
		return err
	}

	b := recordings.NewList()
	ifChanged(fs, "room", func() { b.WithRoomName(*room) })
	ifChanged(fs, "limit", func() { b.WithLimit(*limit) })
	if fs.Changed("starting-after") {
		id, err := parseRecordingID(*startingAfter)
		if err != nil {
			return err
		}
		b.WithStartingAfter(id)
	}
	if fs.Changed("ending-before") {
		id, err := parseRecordingID(*endingBefore)
		if err != nil {
			return err
		}
		b.WithEndingBefore(id)
	}

	var page *recordings.Page
	err := c.call(ctx, func(d daily.Doer) (err error) {
		page, err = b.List(ctx, d)
		return err
	})
	if err != nil {
		return err
	}
	return c.print(page)
}

func (c *cli) recordingsGet(ctx context.Context, args []string) error {
	fs := newCommandFlags("recordings get")
	if err := parse(fs, args, 1, "ID"); err != nil {
		return err
	}
	id, err := parseRecordingID(fs.Arg(0))
	if err != nil {
		return err
	}

	var rec *recordings.Recording
	err = c.call(ctx, func(d daily.Doer) (err error) {
		rec, err = recordings.Get(ctx, d, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.print(rec)
}

func (c *cli) recordingsDelete(ctx context.Context, args []string) error {
	fs := newCommandFlags("recordings delete")
	if err := parse(fs, args, 1, "ID"); err != nil {
		return err
	}
	id, err := parseRecordingID(fs.Arg(0))
	if err != nil {
		return err
	}

	err = c.call(ctx, func(d daily.Doer) error {
		return recordings.Delete(ctx, d, id)
	})
	if err != nil {
		return err
	}
	return c.print(map[string]any{"id": id, "deleted": true})
}

func (c *cli) recordingsLink(ctx context.Context, args []string) error {
	fs := newCommandFlags("recordings link")
	validFor := fs.Duration("valid-for", 0, "link lifetime; service default when unset")
	if err := parse(fs, args, 1, "ID"); err != nil {
		return err
	}
	id, err := parseRecordingID(fs.Arg(0))
	if err != nil {
		return err
	}

	b := recordings.NewAccessLink()
	ifChanged(fs, "valid-for", func() { b.ValidFor(*validFor) })

	var link *recordings.AccessLink
	err = c.call(ctx, func(d daily.Doer) (err error) {
		link, err = b.Get(ctx, d, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.print(struct {
		*recordings.AccessLink
		ExpiresAt time.Time `json:"expires_at"`
	}{link, link.ExpiresAt().UTC()})
}
