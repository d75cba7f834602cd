package catalogue

import (
	"context"
	"log"
	"sync"
	"time"

	"cpdeck/internal/eventbus"
)

// Service runs catalogue fetches, log-ins and submissions off the UI
// goroutine, reporting outcomes on the event bus.
type Service struct {
	bus     eventbus.EventBus
	mu      sync.Mutex
	sources map[string]Source
}

// NewService creates a catalogue service over the given resolved sources.
// It subscribes to request events automatically.
func NewService(bus eventbus.EventBus, sources map[string]Source) *Service {
	s := &Service{
		bus:     bus,
		sources: sources,
	}

	bus.Subscribe(eventbus.EventCatalogueRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CatalogueRequestedEvent); ok {
			go s.fetch(event.Source)
		}
	})

	bus.Subscribe(eventbus.EventLogInRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LogInRequestedEvent); ok {
			go s.logIn(event.Source)
		}
	})

	bus.Subscribe(eventbus.EventSubmitRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SubmitRequestedEvent); ok {
			go s.submit(event)
		}
	})

	return s
}

func (s *Service) source(name string) (Source, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.sources[name]
	return src, ok
}

func (s *Service) fetch(name string) {
	src, ok := s.source(name)
	if !ok {
		s.bus.Publish(eventbus.ErrorEvent{Message: "unknown catalogue source " + name})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cat, err := src.Fetch(ctx)
	if err != nil {
		log.Printf("Catalogue fetch for %s failed: %v", name, err)
		s.bus.Publish(eventbus.ErrorEvent{Message: "could not load " + name + " catalogue", Err: err})
		return
	}
	s.bus.Publish(eventbus.CatalogueLoadedEvent{Catalogue: cat})
}

func (s *Service) logIn(name string) {
	src, ok := s.source(name)
	if !ok {
		s.bus.Publish(eventbus.ErrorEvent{Message: "unknown catalogue source " + name})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := src.LogIn(ctx)
	if err != nil {
		log.Printf("Log in to %s failed: %v", name, err)
	}
	s.bus.Publish(eventbus.LogInCompletedEvent{Source: name, Err: err})
}

func (s *Service) submit(req eventbus.SubmitRequestedEvent) {
	src, ok := s.source(req.Source)
	if !ok {
		s.bus.Publish(eventbus.ErrorEvent{Message: "unknown catalogue source " + req.Source})
		return
	}

	// Longer timeout for uploads
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	err := src.Submit(ctx, req.Problem, req.SolutionPath)
	if err != nil {
		log.Printf("Submission of %s to %s failed: %v", req.Problem.Key(), req.Source, err)
	}
	s.bus.Publish(eventbus.SubmitCompletedEvent{Source: req.Source, Problem: req.Problem, Err: err})
}
