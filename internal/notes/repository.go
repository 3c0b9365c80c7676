package notes

import (
	"context"
	"fmt"

	"example.com/notely-web/internal/form"
	"example.com/notely-web/internal/query"
	"example.com/notely-web/internal/toast"
)

// Remote is the upstream notes API.
type Remote interface {
	ListNotes(ctx context.Context) ([]Note, error)
	CreateNote(ctx context.Context, req CreateNoteRequest) (Note, error)
	GetNote(ctx context.Context, id string) (Note, error)
	UpdateNote(ctx context.Context, id string, req UpdateNoteRequest) (Note, error)
	TrashNote(ctx context.Context, id string) error
	ListTrash(ctx context.Context) ([]Note, error)
	RestoreNote(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, v Visibility) error
	ListPublicNotes(ctx context.Context) ([]Note, error)
	GetPublicNote(ctx context.Context, id string) (Note, error)
}

var (
	KeyNotes  = query.NewKey("notes")
	KeyTrash  = query.NewKey("trash")
	KeyPublic = query.NewKey("public")
)

func NoteKey(id string) query.Key       { return query.NewKey("note", id) }
func PublicListKey() query.Key          { return query.NewKey("public", "notes") }
func PublicNoteKey(id string) query.Key { return query.NewKey("public", "note", id) }

// Repository reads notes through the per-browser query cache and writes them
// as mutations that invalidate the affected reads.
type Repository struct {
	remote Remote
	qc     *query.Client
}

func NewRepository(remote Remote, qc *query.Client) *Repository {
	return &Repository{remote: remote, qc: qc}
}

func (r *Repository) List(ctx context.Context, p ListParams) query.Result[[]Note] {
	res := query.Fetch(ctx, r.qc, KeyNotes, r.remote.ListNotes)
	res.Data = Search(res.Data, p.Query)
	return res
}

func (r *Repository) Get(ctx context.Context, id string) query.Result[Note] {
	return query.Fetch(ctx, r.qc, NoteKey(id), func(ctx context.Context) (Note, error) {
		return r.remote.GetNote(ctx, id)
	})
}

func (r *Repository) Trash(ctx context.Context) query.Result[[]Note] {
	return query.Fetch(ctx, r.qc, KeyTrash, r.remote.ListTrash)
}

func (r *Repository) PublicList(ctx context.Context, p ListParams) query.Result[[]Note] {
	res := query.Fetch(ctx, r.qc, PublicListKey(), r.remote.ListPublicNotes)
	res.Data = Search(res.Data, p.Query)
	return res
}

// PublicNote reads a note for the public reader. With credentials the author's
// own read is tried first so private notes stay readable by their owner; any
// failure falls back to the public read.
func (r *Repository) PublicNote(ctx context.Context, id string, credentialed bool) query.Result[Note] {
	return query.Fetch(ctx, r.qc, PublicNoteKey(id), func(ctx context.Context) (Note, error) {
		if credentialed {
			if n, err := r.remote.GetNote(ctx, id); err == nil {
				return n, nil
			}
		}
		return r.remote.GetPublicNote(ctx, id)
	})
}

// Reload drops the cached reads under keys so the next fetch hits the network.
func (r *Repository) Reload(keys ...query.Key) {
	r.qc.Invalidate(keys...)
}

// Create validates f and issues the create request. An invalid form returns
// the validation error without any request.
func (r *Repository) Create(ctx context.Context, f form.Note) (Note, error) {
	if err := f.Validate(); err != nil {
		return Note{}, err
	}
	var created Note
	err := r.qc.Mutate(ctx, query.Mutation{
		Name:        "Creating note",
		Invalidates: []query.Key{KeyNotes, KeyPublic},
		Success:     toast.NoteCreated(),
		Failure:     failure("Creating note"),
		Retryable:   true,
	}, func(ctx context.Context) error {
		n, err := r.remote.CreateNote(ctx, createRequest(f))
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	return created, err
}

func (r *Repository) Update(ctx context.Context, id string, f form.Note) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return r.qc.Mutate(ctx, query.Mutation{
		Name:        "Updating note",
		Invalidates: []query.Key{KeyNotes, NoteKey(id), KeyPublic},
		Success:     toast.NoteUpdated(),
		Failure:     failure("Updating note"),
		Retryable:   true,
	}, func(ctx context.Context) error {
		_, err := r.remote.UpdateNote(ctx, id, updateRequest(f))
		return err
	})
}

func (r *Repository) MoveToTrash(ctx context.Context, id string) error {
	return r.qc.Mutate(ctx, query.Mutation{
		Name:        "Moving note to trash",
		Invalidates: []query.Key{KeyNotes, NoteKey(id), KeyTrash, KeyPublic},
		Success:     toast.NoteMoved("Note moved to trash"),
		Failure:     failure("Moving note to trash"),
		Retryable:   true,
	}, func(ctx context.Context) error {
		return r.remote.TrashNote(ctx, id)
	})
}

func (r *Repository) Restore(ctx context.Context, id string) error {
	return r.qc.Mutate(ctx, query.Mutation{
		Name:        "Restoring note",
		Invalidates: []query.Key{KeyNotes, NoteKey(id), KeyTrash, KeyPublic},
		Success:     toast.NoteMoved("Note restored successfully"),
		Failure:     failure("Restoring note"),
		Retryable:   true,
	}, func(ctx context.Context) error {
		return r.remote.RestoreNote(ctx, id)
	})
}

func (r *Repository) DeletePermanently(ctx context.Context, id string) error {
	return r.qc.Mutate(ctx, query.Mutation{
		Name:        "Deleting note",
		Invalidates: []query.Key{NoteKey(id), KeyTrash},
		Success:     toast.NoteMoved("Note permanently deleted"),
		Failure:     failure("Deleting note"),
		Retryable:   true,
	}, func(ctx context.Context) error {
		return r.remote.DeleteNote(ctx, id)
	})
}

func (r *Repository) SetVisibility(ctx context.Context, id string, v Visibility) error {
	op := fmt.Sprintf("Making note %s", v)
	return r.qc.Mutate(ctx, query.Mutation{
		Name:        op,
		Invalidates: []query.Key{KeyNotes, NoteKey(id), KeyPublic},
		Success:     toast.NoteMoved(fmt.Sprintf("Note made %s successfully", v)),
		Failure:     failure(op),
		Retryable:   true,
	}, func(ctx context.Context) error {
		return r.remote.SetVisibility(ctx, id, v)
	})
}

func failure(op string) func(error) toast.Toast {
	return func(err error) toast.Toast {
		return toast.OperationFailed(op, toast.Describe(err, ""))
	}
}
