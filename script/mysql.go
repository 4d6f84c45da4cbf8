package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"gorm.io/gorm"
)

// MySQLStore implements the Store interface using GORM. It runs unchanged on
// the SQLite driver used for local development and tests.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new GORM-backed script store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new script in the database.
func (s *MySQLStore) Create(ctx context.Context, script *Script) error {
	script.ApplyDefaults()
	if err := script.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(script).Error; err != nil {
		s.logger.Error(ctx, "failed to create script", map[string]interface{}{
			"error": err.Error(),
			"name":  script.Name,
		})
		return err
	}

	s.logger.Info(ctx, "script created", map[string]interface{}{
		"script_id": script.ID,
		"name":      script.Name,
		"category":  script.Category,
	})

	return nil
}

// GetByID retrieves a script by its ID.
func (s *MySQLStore) GetByID(ctx context.Context, id uint) (*Script, error) {
	var script Script
	err := s.db.WithContext(ctx).First(&script, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScriptNotFound
		}
		s.logger.Error(ctx, "failed to get script by ID", map[string]interface{}{
			"error":     err.Error(),
			"script_id": id,
		})
		return nil, err
	}

	return &script, nil
}

// Update updates a script with the given setters.
func (s *MySQLStore) Update(ctx context.Context, id uint, setters ...UpdateSetter) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var script Script
		if err := tx.First(&script, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScriptNotFound
			}
			return err
		}

		for _, setter := range setters {
			if err := setter(&script); err != nil {
				return err
			}
		}

		return tx.Save(&script).Error
	})
	if err != nil {
		if !errors.Is(err, ErrScriptNotFound) && !isValidationError(err) {
			s.logger.Error(ctx, "failed to update script", map[string]interface{}{
				"error":     err.Error(),
				"script_id": id,
			})
		}
		return err
	}

	s.logger.Info(ctx, "script updated", map[string]interface{}{
		"script_id": id,
	})

	return nil
}

// Delete permanently removes a script.
func (s *MySQLStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Script{}, id)
	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete script", map[string]interface{}{
			"error":     result.Error.Error(),
			"script_id": id,
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrScriptNotFound
	}

	s.logger.Info(ctx, "script deleted", map[string]interface{}{
		"script_id": id,
	})

	return nil
}

// MarkApplied moves a script to applied and stamps date_applied.
func (s *MySQLStore) MarkApplied(ctx context.Context, id uint, at time.Time) (*Script, error) {
	if err := s.Update(ctx, id, SetStatus(StatusApplied), SetDateApplied(at)); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// likeEscaper makes LIKE wildcards in user input match literally. '!' is
// used as the escape character since MySQL and SQLite treat backslash
// differently.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// List retrieves scripts matching the filter, newest first.
func (s *MySQLStore) List(ctx context.Context, filter ListFilter) ([]*Script, error) {
	query := s.db.WithContext(ctx).Model(&Script{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(notes) LIKE ? ESCAPE '!'", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var scripts []*Script
	err := query.Order("date_created DESC").Order("id DESC").Find(&scripts).Error
	if err != nil {
		s.logger.Error(ctx, "failed to list scripts", map[string]interface{}{
			"error":    err.Error(),
			"search":   filter.Search,
			"status":   filter.Status,
			"category": filter.Category,
			"priority": filter.Priority,
		})
		return nil, err
	}

	return scripts, nil
}

// Stats counts scripts per status.
func (s *MySQLStore) Stats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Status Status
		Count  int
	}
	err := s.db.WithContext(ctx).
		Model(&Script{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		s.logger.Error(ctx, "failed to count scripts", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	stats := &Stats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case StatusPending:
			stats.Pending = row.Count
		case StatusApplied:
			stats.Applied = row.Count
		case StatusError:
			stats.Error = row.Count
		}
	}

	return stats, nil
}

// Categories lists the distinct non-empty categories in use.
func (s *MySQLStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).
		Model(&Script{}).
		Where("category <> ''").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		s.logger.Error(ctx, "failed to list categories", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return categories, nil
}

// Import upserts scripts by name inside a single transaction. Items that fail
// validation are skipped and reported; database errors abort the import.
func (s *MySQLStore) Import(ctx context.Context, scripts []Script) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range scripts {
			incoming := scripts[i]
			if err := upsertByName(tx, &incoming); err != nil {
				if isValidationError(err) {
					result.Errors = append(result.Errors,
						fmt.Sprintf("Error importando '%s': %v", displayName(incoming.Name), err))
					continue
				}
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to import scripts", map[string]interface{}{
			"error": err.Error(),
			"count": len(scripts),
		})
		return nil, err
	}

	s.logger.Info(ctx, "scripts imported", map[string]interface{}{
		"imported": result.Imported,
		"rejected": len(result.Errors),
	})

	return result, nil
}

func upsertByName(tx *gorm.DB, incoming *Script) error {
	var existing Script
	err := tx.Where("name = ?", strings.TrimSpace(incoming.Name)).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := *incoming
		created.ID = 0
		created.Name = strings.TrimSpace(created.Name)
		created.ApplyDefaults()
		if err := created.Validate(); err != nil {
			return err
		}
		return tx.Create(&created).Error
	case err != nil:
		return err
	}

	merged := existing
	merged.Path = incoming.Path
	merged.Category = incoming.Category
	merged.Priority = incoming.Priority
	merged.Status = incoming.Status
	merged.Responsible = incoming.Responsible
	merged.Notes = incoming.Notes
	merged.FileSize = incoming.FileSize
	merged.Checksum = incoming.Checksum
	merged.ExecutionTime = incoming.ExecutionTime
	merged.Dependencies = incoming.Dependencies
	if incoming.DateApplied != nil {
		merged.DateApplied = incoming.DateApplied
	}
	merged.ApplyDefaults()
	if err := merged.Validate(); err != nil {
		return err
	}
	return tx.Save(&merged).Error
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidStatus)
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "unknown"
	}
	return name
}
