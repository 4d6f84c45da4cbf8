package script

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_Validate(t *testing.T) {
	tests := []struct {
		name    string
		script  Script
		wantErr error
	}{
		{
			name:    "valid script",
			script:  Script{Name: "Fix indexes", Category: "BD", Priority: PriorityHigh, Status: StatusPending},
			wantErr: nil,
		},
		{
			name:    "unknown category is allowed",
			script:  Script{Name: "Fix indexes", Category: "Misc", Priority: PriorityLow, Status: StatusError},
			wantErr: nil,
		},
		{
			name:    "missing name",
			script:  Script{Category: "BD", Priority: PriorityHigh, Status: StatusPending},
			wantErr: ErrInvalidName,
		},
		{
			name:    "blank name",
			script:  Script{Name: "   ", Category: "BD", Priority: PriorityHigh, Status: StatusPending},
			wantErr: ErrInvalidName,
		},
		{
			name:    "missing category",
			script:  Script{Name: "Fix indexes", Priority: PriorityHigh, Status: StatusPending},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "invalid priority",
			script:  Script{Name: "Fix indexes", Category: "BD", Priority: "urgent", Status: StatusPending},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "invalid status",
			script:  Script{Name: "Fix indexes", Category: "BD", Priority: PriorityHigh, Status: "done"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.script.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScript_ApplyDefaults(t *testing.T) {
	s := Script{Name: "x", Category: "BD", Priority: PriorityLow}
	s.ApplyDefaults()
	assert.Equal(t, StatusPending, s.Status)
	assert.Equal(t, DefaultResponsible, s.Responsible)

	s = Script{Status: StatusError, Responsible: "DBA"}
	s.ApplyDefaults()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, "DBA", s.Responsible)
}

func TestDependencies_ValueAndScan(t *testing.T) {
	v, err := Dependencies{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = Dependencies(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var d Dependencies
	require.NoError(t, d.Scan([]byte(`["x"]`)))
	assert.Equal(t, Dependencies{"x"}, d)

	require.NoError(t, d.Scan(nil))
	assert.Nil(t, d)

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("not json"))
}

func TestDependencies_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		deps Dependencies
		want string
	}{
		{name: "nil list", deps: nil, want: `[]`},
		{name: "empty list", deps: Dependencies{}, want: `[]`},
		{name: "names", deps: Dependencies{"a", "b"}, want: `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.deps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}

	b, err := json.Marshal(Script{Name: "No deps"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"dependencies":[]`)
}

func TestInput_RoundTrip(t *testing.T) {
	in := Input{
		Name:        "  Fix indexes ",
		Path:        "/a.sql",
		Category:    "BD",
		Priority:    PriorityHigh,
		Status:      StatusPending,
		Responsible: "DBA",
		Notes:       "n",
	}
	s := in.ToScript()
	assert.Equal(t, "Fix indexes", s.Name)
	assert.Zero(t, s.ID)

	back := InputFrom(*s)
	assert.Equal(t, "Fix indexes", back.Name)
	assert.Equal(t, in.Notes, back.Notes)
}

func TestSampleScripts(t *testing.T) {
	scripts, err := SampleScripts()
	require.NoError(t, err)
	require.NotEmpty(t, scripts)

	seen := map[string]bool{}
	for _, s := range scripts {
		s.ApplyDefaults()
		assert.NoError(t, s.Validate(), s.Name)
		assert.False(t, seen[s.Name], "duplicate sample %q", s.Name)
		seen[s.Name] = true
	}
}

func TestParseSamples_Invalid(t *testing.T) {
	_, err := parseSamples([]byte("name: [unterminated"))
	assert.Error(t, err)
}
