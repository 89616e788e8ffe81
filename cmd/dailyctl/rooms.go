package main

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/log"
	"github.com/imtaco/dailyco-go/rooms"
)

func (c *cli) roomsCreate(ctx context.Context, args []string) error {
	fs := newCommandFlags("rooms create")
	var (
		name            = fs.String("name", "", "room name; generated when empty")
		privacy         = fs.String("privacy", "", "public or private")
		maxParticipants = fs.Int("max-participants", 0, "participant limit")
		expIn           = fs.Duration("exp-in", 0, "expire the room this long from now")
		startVideoOff   = fs.Bool("start-video-off", false, "join with camera off")
		startAudioOff   = fs.Bool("start-audio-off", false, "join with mic off")
		enableChat      = fs.Bool("enable-chat", false, "enable text chat")
		enableKnocking  = fs.Bool("enable-knocking", false, "let guests knock on private rooms")
		recording       = fs.String("enable-recording", "", "allowed recording type")
		lang            = fs.String("lang", "", "UI language")
		geo             = fs.String("geo", "", "signaling region")
	)
	if err := parse(fs, args, 0, "[flags]"); err != nil {
		return err
	}

	b := rooms.New()
	ifChanged(fs, "name", func() { b.Name(*name) })
	ifChanged(fs, "privacy", func() { b.Privacy(rooms.Privacy(*privacy)) })
	ifChanged(fs, "max-participants", func() { b.MaxParticipants(*maxParticipants) })
	ifChanged(fs, "exp-in", func() { b.Expiry(c.clock.Now().Add(*expIn).Unix()) })
	ifChanged(fs, "start-video-off", func() { b.StartVideoOff(*startVideoOff) })
	ifChanged(fs, "start-audio-off", func() { b.StartAudioOff(*startAudioOff) })
	ifChanged(fs, "enable-chat", func() { b.EnableChat(*enableChat) })
	ifChanged(fs, "enable-knocking", func() { b.EnableKnocking(*enableKnocking) })
	ifChanged(fs, "enable-recording", func() { b.EnableRecording(daily.RecordingType(*recording)) })
	ifChanged(fs, "lang", func() { b.Lang(daily.Lang(*lang)) })
	ifChanged(fs, "geo", func() { b.Geo(daily.Region(*geo)) })

	var room *rooms.Room
	err := c.call(ctx, func(d daily.Doer) (err error) {
		room, err = b.Create(ctx, d)
		return err
	})
	if err != nil {
		return err
	}
	return c.print(room)
}

func (c *cli) roomsGet(ctx context.Context, args []string) error {
	fs := newCommandFlags("rooms get")
	if err := parse(fs, args, 1, "NAME"); err != nil {
		return err
	}

	var room *rooms.Room
	err := c.call(ctx, func(d daily.Doer) (err error) {
		room, err = rooms.Get(ctx, d, fs.Arg(0))
		return err
	})
	if err != nil {
		return err
	}
	return c.print(room)
}

func (c *cli) roomsList(ctx context.Context, args []string) error {
	fs := newCommandFlags("rooms list")
	var (
		opts rooms.ListOptions
		all  = fs.Bool("all", false, "follow cursors and print every room")
	)
	fs.IntVar(&opts.Limit, "limit", 0, "page size, at most 100")
	fs.StringVar(&opts.StartingAfter, "starting-after", "", "room id to page forward from")
	fs.StringVar(&opts.EndingBefore, "ending-before", "", "room id to page backward from")
	fs.BoolVar(&opts.Strict, "strict", false, "fail when the page does not hold every room")
	if err := parse(fs, args, 0, "[flags]"); err != nil {
		return err
	}

	if *all {
		var list []rooms.Room
		err := c.call(ctx, func(d daily.Doer) (err error) {
			list, err = rooms.ListAll(ctx, d)
			return err
		})
		if err != nil {
			return err
		}
		return c.print(rooms.Page{TotalCount: len(list), Data: list})
	}

	var page *rooms.Page
	err := c.call(ctx, func(d daily.Doer) (err error) {
		page, err = rooms.List(ctx, d, opts)
		return err
	})
	if err != nil {
		return err
	}
	return c.print(page)
}

type deleteResult struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// roomsDelete removes every named room, a few at a time. Each room is
// reported; the command fails if any deletion failed.
func (c *cli) roomsDelete(ctx context.Context, args []string) error {
	fs := newCommandFlags("rooms delete")
	if err := parse(fs, args, 1, "NAME..."); err != nil {
		return err
	}
	names := fs.Args()
	if _, err := c.client(); err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		results  = make([]deleteResult, len(names))
		firstErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.Concurrency, 1))
	for i, name := range names {
		g.Go(func() error {
			start := time.Now()
			err := c.call(gctx, func(d daily.Doer) error {
				return rooms.Delete(gctx, d, name)
			})
			c.logger.Debug("Room delete",
				log.String("room", name),
				log.Duration("elapsed", time.Since(start)),
				log.Error(err))

			results[i] = deleteResult{Name: name, Deleted: err == nil}
			if err != nil {
				results[i].Error = err.Error()
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := c.print(results); err != nil {
		return err
	}
	return firstErr
}
