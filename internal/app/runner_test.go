package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/config"
	"github.com/elkdev72/ecommerce-prj/internal/provider"
)

type fakeService struct {
	name     string
	startErr error
	stopErr  error
	block    bool
	stops    *[]string
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	if s.stops != nil {
		*s.stops = append(*s.stops, s.name)
	}
	return s.stopErr
}

func TestRunnerStopsServicesInReverseOrder(t *testing.T) {
	boom := errors.New("boom")
	var stops []string
	first := &fakeService{name: "first", block: true, stops: &stops}
	second := &fakeService{name: "second", block: true, stops: &stops}
	failing := &fakeService{name: "failing", startErr: boom, stops: &stops}

	err := NewRunner(nil, time.Second, first, second, failing).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "failing") {
		t.Fatalf("error should name the service: %v", err)
	}
	if strings.Join(stops, ",") != "failing,second,first" {
		t.Fatalf("unexpected stop order: %v", stops)
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	var stops []string
	blocking := &fakeService{name: "blocking", block: true, stops: &stops}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRunner(nil, time.Second, blocking).Run(ctx); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("expected service stopped once, got %v", stops)
	}
}

func TestRunnerReportsStopFailure(t *testing.T) {
	stopFail := errors.New("stop failed")
	svc := &fakeService{name: "worker", block: true, stopErr: stopFail}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(nil, time.Second, svc).Run(ctx)
	if !errors.Is(err, stopFail) {
		t.Fatalf("expected stop failure, got %v", err)
	}
}

func TestRunnerRejectsEmptyAndNilServices(t *testing.T) {
	if err := NewRunner(nil, time.Second).Run(context.Background()); err == nil {
		t.Fatalf("expected error without services")
	}
	if err := NewRunner(nil, time.Second, nil).Run(context.Background()); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

func TestBuildRunnerModes(t *testing.T) {
	cfg := &config.Config{}
	container := provider.NewContainerWithDB(cfg, nil, nil)
	if _, err := BuildRunner(container, Options{Config: cfg, Mode: "api"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := BuildRunner(container, Options{Config: cfg, Mode: ModeWorker}); err == nil {
		t.Fatalf("expected error when queue disabled")
	}
	if _, err := BuildRunner(container, Options{}); err == nil {
		t.Fatalf("expected error without config")
	}
	if _, err := BuildRunner(nil, Options{Config: cfg}); err == nil {
		t.Fatalf("expected error without container")
	}
}
