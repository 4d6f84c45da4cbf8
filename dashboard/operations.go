package dashboard

import (
	"context"
	"fmt"

	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

// DeletePrompt is the question asked before a script is deleted.
const DeletePrompt = "¿Estás seguro de que deseas eliminar este script?"

type opTexts struct {
	name       string
	success    string
	fallback   string
	connection string
}

var (
	textsLoad = opTexts{
		name:       "load",
		fallback:   "Error al cargar scripts",
		connection: "Error de conexión al cargar scripts",
	}
	textsCreate = opTexts{
		name:       "create",
		success:    "Script creado exitosamente",
		fallback:   "Error al crear script",
		connection: "Error de conexión al crear script",
	}
	textsUpdate = opTexts{
		name:       "update",
		success:    "Script actualizado exitosamente",
		fallback:   "Error al actualizar script",
		connection: "Error de conexión al actualizar script",
	}
	textsDelete = opTexts{
		name:       "delete",
		success:    "Script eliminado exitosamente",
		fallback:   "Error al eliminar script",
		connection: "Error de conexión al eliminar script",
	}
	textsApply = opTexts{
		name:       "apply",
		success:    "Script marcado como aplicado",
		fallback:   "Error al marcar script",
		connection: "Error de conexión al marcar script",
	}
	textsSamples = opTexts{
		name:       "sample-data",
		fallback:   "Error al cargar datos de ejemplo",
		connection: "Error de conexión al cargar datos de ejemplo",
	}
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm is used when the confirmation already happened in the UI.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// mutate runs one backend call and applies the shared outcome policy: a
// transport or parse failure shows the connection error, a rejection shows the
// backend message or the fallback, and a success shows successText and
// reloads the full record set.
func mutate[T any](ctx context.Context, a *App, texts opTexts, call func() (*apiclient.Envelope[T], error), successText func(*apiclient.Envelope[T]) string) bool {
	env, err := call()
	if err != nil {
		a.logger.Error(ctx, "script operation failed", map[string]interface{}{
			"operation": texts.name,
			"error":     err.Error(),
		})
		a.notifier.Error(texts.connection)
		return false
	}

	if !env.Success {
		a.logger.Warn(ctx, "script operation rejected", map[string]interface{}{
			"operation": texts.name,
			"error":     env.Error,
			"status":    env.StatusCode,
		})
		message := env.Error
		if message == "" {
			message = texts.fallback
		}
		a.notifier.Error(message)
		return false
	}

	a.logger.Info(ctx, "script operation succeeded", map[string]interface{}{
		"operation": texts.name,
	})
	a.notifier.Success(successText(env))
	a.Reload(ctx)
	return true
}

func fixed[T any](text string) func(*apiclient.Envelope[T]) string {
	return func(*apiclient.Envelope[T]) string { return text }
}

// Create creates a script and closes the form on success.
func (a *App) Create(ctx context.Context, in script.Input) bool {
	ok := mutate(ctx, a, textsCreate, func() (*apiclient.Envelope[script.Script], error) {
		return a.backend.CreateScript(ctx, in)
	}, fixed[script.Script](textsCreate.success))
	if ok {
		a.CloseDialog()
	}
	return ok
}

// Update saves the editable fields of a script and closes the form on success.
func (a *App) Update(ctx context.Context, id uint, in script.Input) bool {
	ok := mutate(ctx, a, textsUpdate, func() (*apiclient.Envelope[script.Script], error) {
		return a.backend.UpdateScript(ctx, id, in)
	}, fixed[script.Script](textsUpdate.success))
	if ok {
		a.CloseDialog()
	}
	return ok
}

// Delete removes a script once confirm agrees. Declining, or a nil confirm,
// sends nothing and shows nothing.
func (a *App) Delete(ctx context.Context, id uint, confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(ctx, DeletePrompt) {
		a.logger.Debug(ctx, "script deletion declined", map[string]interface{}{
			"script_id": id,
		})
		return false
	}
	return mutate(ctx, a, textsDelete, func() (*apiclient.Envelope[struct{}], error) {
		return a.backend.DeleteScript(ctx, id)
	}, fixed[struct{}](textsDelete.success))
}

// MarkApplied moves a pending script to applied.
func (a *App) MarkApplied(ctx context.Context, id uint) bool {
	return mutate(ctx, a, textsApply, func() (*apiclient.Envelope[script.Script], error) {
		return a.backend.ApplyScript(ctx, id)
	}, fixed[script.Script](textsApply.success))
}

// LoadSampleData asks the backend to load its sample scripts.
func (a *App) LoadSampleData(ctx context.Context) bool {
	return mutate(ctx, a, textsSamples, func() (*apiclient.Envelope[struct{}], error) {
		return a.backend.LoadSampleData(ctx)
	}, func(env *apiclient.Envelope[struct{}]) string {
		return fmt.Sprintf("%d scripts de ejemplo cargados", env.ImportedCount)
	})
}

// Submit sends the form: an update when an edit target is set, a create
// otherwise. The form keeps the submitted values so a rejected save can be
// corrected. Submitting a closed form does nothing.
func (a *App) Submit(ctx context.Context, in script.Input) bool {
	a.mu.Lock()
	if !a.dialog.IsOpen() {
		a.mu.Unlock()
		return false
	}
	a.dialog.Form = in
	editID := a.dialog.EditID
	a.mu.Unlock()

	if editID != 0 {
		return a.Update(ctx, editID, in)
	}
	return a.Create(ctx, in)
}
