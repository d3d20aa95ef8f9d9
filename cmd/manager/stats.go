package main

import (
	"context"
	"log"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/pkg/errors"
)

const statsURL = "/debug/statsview"

// statsView serves live runtime charts of the manager process
type statsView struct {
	addr string
}

func newStatsView(addr string) *statsView {
	return &statsView{
		addr: addr,
	}
}

func (s *statsView) String() string {
	return "statsView"
}

func (s *statsView) Serve(haltCtx context.Context) error {
	viewer.SetConfiguration(viewer.WithAddr(s.addr))
	mgr := statsview.New()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		mgr.Start()
	}()
	log.Printf("[statsView] stats available at http://%s%s\n", s.addr, statsURL)

	select {
	case <-haltCtx.Done():
		mgr.Stop()
		log.Println("[statsView] stopped")
		return nil
	case <-stopped:
		return errors.Errorf("[statsView] stats server at %s stopped", s.addr)
	}
}
