package web

import (
	"html/template"

	"example.com/notely-web/internal/account"
	"example.com/notely-web/internal/action"
	"example.com/notely-web/internal/editor"
	"example.com/notely-web/internal/form"
	"example.com/notely-web/internal/notes"
	"example.com/notely-web/internal/toast"
)

type ViewData struct {
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML

	User   *account.User
	Toasts []toast.Toast

	// NavDelayMS is the loading-indicator delay the page script applies
	// before following a card link.
	NavDelayMS int64

	SearchQuery  string
	SearchAction string
	Notes        []notes.Note
	PublicNotes  []notes.Note
	PrivateNotes []notes.Note
	Note         notes.Note
	// LoadError is set when a read failed; ReloadHref retries it.
	LoadError  string
	ReloadHref string

	Form       form.Note
	FormAction string
	Editor     editor.View

	Dialog *Dialog

	Profile      account.Profile
	Registration account.Registration
	Email        string
}

// Dialog is a pending confirmation.
type Dialog struct {
	Token        string
	Kind         action.Kind
	NoteID       string
	Title        string
	Message      string
	ConfirmLabel string
	Return       string
}

func dialogFor(p action.Pending, ret string) *Dialog {
	d := &Dialog{Token: p.Token, Kind: p.Kind, NoteID: p.NoteID, Return: ret}
	switch p.Kind {
	case action.KindTrash:
		d.Title = "Move to Trash"
		d.Message = "Are you sure you want to move this note to trash? You can restore it later from the trash."
		d.ConfirmLabel = "Move to Trash"
	case action.KindRestore:
		d.Title = "Restore Note"
		d.Message = "Are you sure you want to restore this note? It will be moved back to your notes."
		d.ConfirmLabel = "Restore"
	case action.KindDelete:
		d.Title = "Delete Permanently"
		d.Message = "Are you sure you want to permanently delete this note? This action cannot be undone."
		d.ConfirmLabel = "Delete Permanently"
	case action.KindMakePublic:
		d.Title = "Make Note Public"
		d.Message = "Are you sure you want to make this note public? Anyone will be able to see and read this note."
		d.ConfirmLabel = "Make Public"
	case action.KindMakePrivate:
		d.Title = "Make Note Private"
		d.Message = "Are you sure you want to make this note private? Only you will be able to see this note."
		d.ConfirmLabel = "Make Private"
	}
	return d
}
