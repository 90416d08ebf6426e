// Package catalog answers camp and session queries over a record store.
package catalog

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mandag122/WeeVora/internal/mapper"
	"github.com/mandag122/WeeVora/internal/models"
)

var (
	ErrNotConfigured     = errors.New("record store not configured")
	ErrCampNotFound      = errors.New("camp not found")
	ErrInvalidSubmission = errors.New("invalid submission")
)

// Source is a record store: Airtable, a Sheets workbook or a fixture file
type Source interface {
	ListRecords(ctx context.Context, table string) ([]models.Record, error)
	CreateRecord(ctx context.Context, table string, fields map[string]any, typecast bool) (models.Record, error)
}

// Notifier is told about new contact and feedback submissions
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Service is the catalog query layer. Every call re-reads the source.
type Service struct {
	source    Source
	campTable string
	notifier  Notifier
	log       *zap.Logger
}

type Option func(*Service)

// WithCampTable overrides the camps table name
func WithCampTable(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.campTable = name
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// New creates a service. A nil source makes every call fail with
// ErrNotConfigured.
func New(source Source, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{source: source, campTable: mapper.TableCamps, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a record store is attached
func (s *Service) Configured() bool {
	return s.source != nil
}

type tables struct {
	camps      []models.Record
	options    []models.Record
	campsErr   error
	optionsErr error
}

// fetch reads the camps and registration options tables concurrently. The
// two reads are independent, so one failing does not cancel the other.
func (s *Service) fetch(ctx context.Context) tables {
	var t tables
	var g errgroup.Group

	g.Go(func() error {
		t.camps, t.campsErr = s.source.ListRecords(ctx, s.campTable)
		return t.campsErr
	})
	g.Go(func() error {
		t.options, t.optionsErr = s.source.ListRecords(ctx, mapper.TableRegistrationOptions)
		return t.optionsErr
	})
	_ = g.Wait()

	return t
}

// ListCamps returns every visible camp in source order. Upstream failures
// are logged and yield an empty list.
func (s *Service) ListCamps(ctx context.Context) ([]models.Camp, error) {
	if s.source == nil {
		return nil, ErrNotConfigured
	}

	t := s.fetch(ctx)
	if t.campsErr != nil {
		s.log.Error("failed to fetch camps", zap.String("table", s.campTable), zap.Error(t.campsErr))
		return []models.Camp{}, nil
	}
	if t.optionsErr != nil {
		s.log.Warn("failed to fetch registration options, detail flags unavailable", zap.Error(t.optionsErr))
	}

	camps, diags := mapper.MapCamps(t.camps, mapper.CampIDsWithDetail(t.options))
	s.logDiagnostics(diags)
	return camps, nil
}

// GetCampBySlug finds a visible camp by slug
func (s *Service) GetCampBySlug(ctx context.Context, slug string) (models.Camp, error) {
	camps, err := s.ListCamps(ctx)
	if err != nil {
		return models.Camp{}, err
	}
	for _, c := range camps {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.Camp{}, ErrCampNotFound
}

// GetSessionsForCamp expands every registration option and keeps those
// linked to campID.
func (s *Service) GetSessionsForCamp(ctx context.Context, campID string) ([]models.Session, error) {
	if s.source == nil {
		return nil, ErrNotConfigured
	}

	records, err := s.source.ListRecords(ctx, mapper.TableRegistrationOptions)
	if err != nil {
		s.log.Error("failed to fetch registration options", zap.Error(err))
		return []models.Session{}, nil
	}

	all, diags := mapper.ExpandAllSessions(records)
	s.logDiagnostics(diags)

	sessions := []models.Session{}
	for _, sess := range all {
		if sess.CampID == campID {
			sessions = append(sessions, sess)
		}
	}
	return sessions, nil
}

// CampIDsWithRegistrationDetail lists, sorted, the camps that have at least
// one named registration option.
func (s *Service) CampIDsWithRegistrationDetail(ctx context.Context) ([]string, error) {
	if s.source == nil {
		return nil, ErrNotConfigured
	}

	records, err := s.source.ListRecords(ctx, mapper.TableRegistrationOptions)
	if err != nil {
		s.log.Error("failed to fetch registration options", zap.Error(err))
		return []string{}, nil
	}

	set := mapper.CampIDsWithDetail(records)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Diagnostics maps both tables and returns every data-quality finding.
// Unlike the read paths, upstream failures are returned.
func (s *Service) Diagnostics(ctx context.Context) ([]models.Diagnostic, error) {
	if s.source == nil {
		return nil, ErrNotConfigured
	}

	t := s.fetch(ctx)
	if err := errors.Join(t.campsErr, t.optionsErr); err != nil {
		return nil, err
	}

	_, diags := mapper.MapCamps(t.camps, mapper.CampIDsWithDetail(t.options))
	_, sessionDiags := mapper.ExpandAllSessions(t.options)
	return append(diags, sessionDiags...), nil
}

func (s *Service) logDiagnostics(diags []models.Diagnostic) {
	for _, d := range diags {
		s.log.Warn("data quality",
			zap.String("table", d.Table),
			zap.String("record_id", d.RecordID),
			zap.String("field", d.Field),
			zap.String("detail", d.Message),
		)
	}
}
