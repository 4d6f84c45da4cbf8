package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

// ListParams narrows ListScripts server side. Empty fields are not sent.
type ListParams struct {
	Search   string
	Status   string
	Category string
	Priority string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"search":   p.Search,
		"status":   p.Status,
		"category": p.Category,
		"priority": p.Priority,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}

func call[T any](fn func(out interface{}) (int, error)) (*Envelope[T], error) {
	env := &Envelope[T]{}
	status, err := fn(env)
	env.StatusCode = status
	if err != nil {
		return nil, err
	}
	return env, nil
}

func scriptPath(id uint) string {
	return fmt.Sprintf("/scripts/%d", id)
}

// ListScripts fetches scripts, newest first.
func (c *Client) ListScripts(ctx context.Context, params ListParams) (*Envelope[[]script.Script], error) {
	return call[[]script.Script](func(out interface{}) (int, error) {
		return c.Get(ctx, "/scripts", params.values(), out)
	})
}

// GetScript fetches one script.
func (c *Client) GetScript(ctx context.Context, id uint) (*Envelope[script.Script], error) {
	return call[script.Script](func(out interface{}) (int, error) {
		return c.Get(ctx, scriptPath(id), nil, out)
	})
}

// CreateScript creates a script from the form fields.
func (c *Client) CreateScript(ctx context.Context, in script.Input) (*Envelope[script.Script], error) {
	return call[script.Script](func(out interface{}) (int, error) {
		return c.Post(ctx, "/scripts", in, out)
	})
}

// UpdateScript replaces the editable fields of a script.
func (c *Client) UpdateScript(ctx context.Context, id uint, in script.Input) (*Envelope[script.Script], error) {
	return call[script.Script](func(out interface{}) (int, error) {
		return c.Put(ctx, scriptPath(id), in, out)
	})
}

// DeleteScript removes a script.
func (c *Client) DeleteScript(ctx context.Context, id uint) (*Envelope[struct{}], error) {
	return call[struct{}](func(out interface{}) (int, error) {
		return c.Delete(ctx, scriptPath(id), out)
	})
}

// ApplyScript marks a script as applied.
func (c *Client) ApplyScript(ctx context.Context, id uint) (*Envelope[script.Script], error) {
	return call[script.Script](func(out interface{}) (int, error) {
		return c.Post(ctx, scriptPath(id)+"/apply", nil, out)
	})
}

// LoadSampleData asks the backend to upsert its sample scripts.
func (c *Client) LoadSampleData(ctx context.Context) (*Envelope[struct{}], error) {
	return call[struct{}](func(out interface{}) (int, error) {
		return c.Post(ctx, "/scripts/sample-data", nil, out)
	})
}

// Stats fetches the per-status counters.
func (c *Client) Stats(ctx context.Context) (*Envelope[script.Stats], error) {
	return call[script.Stats](func(out interface{}) (int, error) {
		return c.Get(ctx, "/scripts/stats", nil, out)
	})
}

// Categories fetches the distinct categories in use.
func (c *Client) Categories(ctx context.Context) (*Envelope[[]string], error) {
	return call[[]string](func(out interface{}) (int, error) {
		return c.Get(ctx, "/scripts/categories", nil, out)
	})
}

// Export fetches every script together with the export timestamp.
func (c *Client) Export(ctx context.Context) (*Envelope[[]script.Script], error) {
	return call[[]script.Script](func(out interface{}) (int, error) {
		return c.Get(ctx, "/scripts/export", nil, out)
	})
}

// Import upserts scripts by name.
func (c *Client) Import(ctx context.Context, scripts []script.Script) (*Envelope[struct{}], error) {
	if scripts == nil {
		scripts = []script.Script{}
	}
	return call[struct{}](func(out interface{}) (int, error) {
		return c.Post(ctx, "/scripts/import", scripts, out)
	})
}
