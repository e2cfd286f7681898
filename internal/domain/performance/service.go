package performance

import (
	"context"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/record"
)

var Spec = filter.Spec[Record]{
	Search: []filter.Field[Record]{
		func(r Record) string { return r.EmployeeName },
		func(r Record) string { return r.Department },
		func(r Record) string { return r.JobTitle },
	},
	Dimensions: map[string]filter.Field[Record]{
		"department": func(r Record) string { return r.Department },
	},
	Date: func(r Record) civil.Date { return r.LastUpdated },
	Vars: func(r Record) map[string]any {
		vars := map[string]any{
			"employeeName": r.EmployeeName,
			"department":   r.Department,
			"jobTitle":     r.JobTitle,
			"overallScore": int64(r.OverallScore),
		}
		for _, m := range r.Metrics {
			vars[m.Name] = int64(m.Score)
		}
		return vars
	},
}

type Service struct {
	store  *record.Store[Record]
	notify notifications.Notifier
	log    *zap.Logger
	now    func() time.Time
}

func NewService(store *record.Store[Record], notify notifications.Notifier, log *zap.Logger) *Service {
	if notify == nil {
		notify = notifications.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, notify: notify, log: log, now: time.Now}
}

func (s *Service) List(c filter.Criteria) ([]Record, error) {
	return Spec.Apply(s.store.List(), c)
}

func (s *Service) Get(id int64) (Record, error) {
	return s.store.Get(id)
}

// UpdateScores sets the given metric scores, recomputes the overall score
// and stamps the record with today's date.
func (s *Service) UpdateScores(ctx context.Context, id int64, scores map[string]int) (Record, error) {
	today := civil.DateOf(s.now())
	updated, err := s.store.Modify(id, func(current Record) (Record, error) {
		metrics, err := ApplyScores(current.Metrics, scores)
		if err != nil {
			return current, err
		}
		current.Metrics = metrics
		current.OverallScore = OverallScore(metrics)
		current.LastUpdated = today
		return current, nil
	})
	if err != nil {
		return Record{}, err
	}
	s.log.Info("performance updated", zap.Int64("recordId", id), zap.Int("overallScore", updated.OverallScore))
	s.notify.Notify(ctx, notifications.Success("Performance Updated", updated.EmployeeName+"'s performance has been updated successfully."))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	rec, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.notify.Notify(ctx, notifications.Success("Performance Deleted", rec.EmployeeName+"'s performance record has been deleted."))
	return nil
}
