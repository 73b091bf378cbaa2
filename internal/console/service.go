package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/indexdeck/internal/algolia"
)

// Service runs the operator actions against the provider. It holds no state
// between calls; every action fetches fresh data.
type Service struct {
	api algolia.API
	log *zap.Logger
}

// New returns a Service backed by api. A nil logger discards output.
func New(api algolia.API, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

// Records browses every record of index.
func (s *Service) Records(ctx context.Context, index string) ([]algolia.Record, error) {
	index, err := requireIndex(index, msgAllFieldsRequired)
	if err != nil {
		return nil, err
	}
	done := s.track("fetch_records", index)
	records, err := s.api.BrowseRecords(ctx, index)
	done(err, zap.Int("records", len(records)))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteRecord deletes objectID and returns the index contents fetched after
// the delete completed.
func (s *Service) DeleteRecord(ctx context.Context, index, objectID string) ([]algolia.Record, error) {
	index, err := requireIndex(index, msgAllFieldsRequired)
	if err != nil {
		return nil, err
	}
	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		return nil, &ValidationError{Field: "objectID", Message: msgAllFieldsRequired}
	}

	done := s.track("delete_record", index, zap.String("object_id", objectID))
	if err := s.api.DeleteRecord(ctx, index, objectID); err != nil {
		done(err)
		return nil, err
	}
	records, err := s.api.BrowseRecords(ctx, index)
	if err != nil {
		done(err)
		return nil, &RefetchError{Err: err}
	}
	done(nil, zap.Int("records", len(records)))
	return records, nil
}

// Settings fetches the settings document of index.
func (s *Service) Settings(ctx context.Context, index string) (algolia.Settings, error) {
	index, err := requireIndex(index, msgAllFieldsRequired)
	if err != nil {
		return nil, err
	}
	done := s.track("fetch_settings", index)
	settings, err := s.api.GetSettings(ctx, index)
	done(err, zap.Int("keys", len(settings)))
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings parses text as a JSON object and replaces the settings of
// index with it.
func (s *Service) UpdateSettings(ctx context.Context, index, text string) (algolia.SettingsUpdate, error) {
	index, err := requireIndex(index, msgAllFieldsRequired)
	if err != nil {
		return algolia.SettingsUpdate{}, err
	}
	if strings.TrimSpace(text) == "" {
		return algolia.SettingsUpdate{}, &ValidationError{Field: "settings", Message: msgAllFieldsRequired}
	}
	doc, err := ParseSettings(text)
	if err != nil {
		return algolia.SettingsUpdate{}, err
	}

	done := s.track("update_settings", index, zap.Int("keys", len(doc)))
	ack, err := s.api.PutSettings(ctx, index, doc)
	done(err, zap.Int64("task_id", ack.TaskID))
	if err != nil {
		return algolia.SettingsUpdate{}, err
	}
	return ack, nil
}

// Usage fetches the merged daily usage rows of index.
func (s *Service) Usage(ctx context.Context, index string) ([]algolia.UsageRow, error) {
	index, err := requireIndex(index, msgIndexRequired)
	if err != nil {
		return nil, err
	}
	done := s.track("fetch_usage", index)
	rows, err := s.api.FetchUsage(ctx, index)
	done(err, zap.Int("rows", len(rows)))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryLogs fetches the recent API log entries of index.
func (s *Service) QueryLogs(ctx context.Context, index string) ([]algolia.QueryLog, error) {
	index, err := requireIndex(index, msgIndexRequired)
	if err != nil {
		return nil, err
	}
	done := s.track("fetch_query_logs", index)
	logs, err := s.api.FetchQueryLogs(ctx, index)
	done(err, zap.Int("entries", len(logs)))
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// Analytics fetches the combined analytics counters of index.
func (s *Service) Analytics(ctx context.Context, index string) (algolia.Analytics, error) {
	index, err := requireIndex(index, msgIndexRequired)
	if err != nil {
		return algolia.Analytics{}, err
	}
	done := s.track("fetch_analytics", index)
	result, err := s.api.FetchAnalytics(ctx, index)
	done(err, zap.Int64("searches", result.TotalSearches))
	if err != nil {
		return algolia.Analytics{}, err
	}
	return result, nil
}

// ParseSettings decodes text into a settings document. Anything other than a
// JSON object is ErrMalformedInput.
func ParseSettings(text string) (algolia.Settings, error) {
	var doc map[string]any
	if err := algolia.DocumentJSON.UnmarshalFromString(strings.TrimSpace(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedInput)
	}
	return algolia.Settings(doc), nil
}

// FormatSettings renders a settings document as indented JSON for editing.
func FormatSettings(settings algolia.Settings) (string, error) {
	if settings == nil {
		settings = algolia.Settings{}
	}
	out, err := algolia.DocumentJSON.MarshalIndent(map[string]any(settings), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(out), nil
}

func requireIndex(index, message string) (string, error) {
	index = strings.TrimSpace(index)
	if index == "" {
		return "", &ValidationError{Field: "index", Message: message}
	}
	return index, nil
}

// track logs the start of an action under a fresh correlation ID and returns
// a func that logs its outcome.
func (s *Service) track(action, index string, fields ...zap.Field) func(err error, extra ...zap.Field) {
	log := s.log.With(
		zap.String("action", action),
		zap.String("action_id", uuid.NewString()),
		zap.String("index", index),
	)
	log.Debug("action started", fields...)
	started := time.Now()
	return func(err error, extra ...zap.Field) {
		extra = append(extra, zap.Duration("elapsed", time.Since(started)))
		if err != nil {
			log.Warn("action failed", append(extra, zap.Error(err))...)
			return
		}
		log.Info("action completed", append(fields, extra...)...)
	}
}
