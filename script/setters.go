package script

import (
	"strings"
	"time"
)

// SetName returns an UpdateSetter that sets the script's name.
func SetName(name string) UpdateSetter {
	return func(s *Script) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrInvalidName
		}
		s.Name = name
		return nil
	}
}

// SetPath returns an UpdateSetter that sets the script's path.
func SetPath(path string) UpdateSetter {
	return func(s *Script) error {
		s.Path = path
		return nil
	}
}

// SetCategory returns an UpdateSetter that sets the script's category.
func SetCategory(category string) UpdateSetter {
	return func(s *Script) error {
		if strings.TrimSpace(category) == "" {
			return ErrInvalidCategory
		}
		s.Category = category
		return nil
	}
}

// SetPriority returns an UpdateSetter that sets the script's priority.
func SetPriority(priority Priority) UpdateSetter {
	return func(s *Script) error {
		if !priority.IsValid() {
			return ErrInvalidPriority
		}
		s.Priority = priority
		return nil
	}
}

// SetStatus returns an UpdateSetter that sets the script's status.
// It does not touch date_applied; use MarkApplied for that transition.
func SetStatus(status Status) UpdateSetter {
	return func(s *Script) error {
		if !status.IsValid() {
			return ErrInvalidStatus
		}
		s.Status = status
		return nil
	}
}

// SetResponsible returns an UpdateSetter that sets the responsible party.
func SetResponsible(responsible string) UpdateSetter {
	return func(s *Script) error {
		s.Responsible = responsible
		return nil
	}
}

// SetNotes returns an UpdateSetter that sets the script's notes.
func SetNotes(notes string) UpdateSetter {
	return func(s *Script) error {
		s.Notes = notes
		return nil
	}
}

// SetDependencies returns an UpdateSetter that replaces the dependency list.
func SetDependencies(deps []string) UpdateSetter {
	return func(s *Script) error {
		s.Dependencies = Dependencies(deps)
		return nil
	}
}

// SetFileSize returns an UpdateSetter that records the script file size in bytes.
func SetFileSize(size int64) UpdateSetter {
	return func(s *Script) error {
		s.FileSize = &size
		return nil
	}
}

// SetChecksum returns an UpdateSetter that records the script file checksum.
func SetChecksum(checksum string) UpdateSetter {
	return func(s *Script) error {
		s.Checksum = checksum
		return nil
	}
}

// SetExecutionTime returns an UpdateSetter that records the last execution time.
func SetExecutionTime(seconds int) UpdateSetter {
	return func(s *Script) error {
		s.ExecutionTime = &seconds
		return nil
	}
}

// SetDateApplied returns an UpdateSetter that sets date_applied.
func SetDateApplied(at time.Time) UpdateSetter {
	return func(s *Script) error {
		applied := at.UTC()
		s.DateApplied = &applied
		return nil
	}
}

// SettersFromInput converts a full form submission into setters.
func SettersFromInput(in Input) []UpdateSetter {
	return []UpdateSetter{
		SetName(in.Name),
		SetPath(in.Path),
		SetCategory(in.Category),
		SetPriority(in.Priority),
		SetStatus(in.Status),
		SetResponsible(in.Responsible),
		SetNotes(in.Notes),
	}
}
