package health

import (
	"context"
	"sort"
	"time"
)

const defaultTimeout = 2 * time.Second

// Checker probes one dependency. A nil error means healthy.
type Checker func(ctx context.Context) error

// Report is the health payload. Checks maps a dependency name to "ok" or
// the error it returned.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Service runs registered dependency checks.
type Service struct {
	timeout time.Duration
	names   []string
	checks  map[string]Checker
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{timeout: defaultTimeout, checks: map[string]Checker{}}
}

// Register adds a named check. Registering a name twice replaces the check.
func (s *Service) Register(name string, check Checker) {
	if check == nil {
		return
	}
	if _, ok := s.checks[name]; !ok {
		s.names = append(s.names, name)
		sort.Strings(s.names)
	}
	s.checks[name] = check
}

// Status runs every check under a shared timeout.
func (s *Service) Status(ctx context.Context) Report {
	if s == nil || len(s.names) == 0 {
		return Report{OK: true}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rep := Report{OK: true, Checks: make(map[string]string, len(s.names))}
	for _, name := range s.names {
		if err := s.checks[name](ctx); err != nil {
			rep.OK = false
			rep.Checks[name] = err.Error()
			continue
		}
		rep.Checks[name] = "ok"
	}
	return rep
}
