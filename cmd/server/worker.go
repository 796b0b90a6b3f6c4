package main

import (
	"context"
	"log"
	"sync"

	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/render"
)

// renderScheduler bounds the number of renders running at once. Every
// render already uses all cores, so queued requests wait for a free slot
// instead of oversubscribing the machine.
type renderScheduler struct {
	slots chan struct{}

	active   int
	rendered int
	m        sync.Mutex
}

func newRenderScheduler(maxActive int) *renderScheduler {
	return &renderScheduler{slots: make(chan struct{}, max(maxActive, 1))}
}

// GetImage implements juliafatou.ImageProvider.
func (rs *renderScheduler) GetImage(job juliafatou.Job) (*juliafatou.RGB, error) {
	return rs.render(context.Background(), job, nil)
}

// render waits for a free slot and renders job. onBand, when not nil, is
// called from the workers with each finished band and the fraction of
// rows finished so far.
func (rs *renderScheduler) render(ctx context.Context, job juliafatou.Job, onBand func(render.Band, float32)) (*juliafatou.RGB, error) {
	select {
	case rs.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
	defer func() { <-rs.slots }()

	rs.incActive()
	defer rs.decActive()

	p := &progress{totalRows: job.Height}
	img, err := render.Image(job, render.WithBandDone(func(b render.Band) {
		p.bandFinished(b, onBand)
	}))
	if err != nil {
		return nil, err
	}

	rs.m.Lock()
	rs.rendered++
	n := rs.rendered
	rs.m.Unlock()
	log.Printf("rendered %dx%d (%d total)", job.Width, job.Height, n)
	return img, nil
}

func (rs *renderScheduler) incActive() {
	rs.m.Lock()
	rs.active++
	a := rs.active
	rs.m.Unlock()

	log.Printf("active renders: %d", a)
}

func (rs *renderScheduler) decActive() {
	rs.m.Lock()
	rs.active--
	a := rs.active
	rs.m.Unlock()

	log.Printf("active renders: %d", a)
}

// progress counts finished rows of one render.
type progress struct {
	totalRows    int
	finishedRows int
	m            sync.Mutex
}

// bandFinished records b and reports it to fn. fn is called under the
// lock so that reported fractions never go backwards.
func (p *progress) bandFinished(b render.Band, fn func(render.Band, float32)) {
	p.m.Lock()
	defer p.m.Unlock()
	p.finishedRows += b.Rows
	if fn != nil {
		fn(b, float32(p.finishedRows)/float32(p.totalRows))
	}
}

var _ juliafatou.ImageProvider = (*renderScheduler)(nil)
