package api

import (
	"context"
	"net/http"
	"net/url"

	"example.com/notely-web/internal/notes"
)

func notePath(id string, suffix ...string) string {
	p := "/notes/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (c *Client) ListNotes(ctx context.Context) ([]notes.Note, error) {
	var out []notes.Note
	_, err := c.do(ctx, "api.ListNotes", http.MethodGet, "/notes", nil, &out)
	return out, err
}

func (c *Client) CreateNote(ctx context.Context, req notes.CreateNoteRequest) (notes.Note, error) {
	var n notes.Note
	_, err := c.do(ctx, "api.CreateNote", http.MethodPost, "/notes", req, &n)
	return n, err
}

func (c *Client) GetNote(ctx context.Context, id string) (notes.Note, error) {
	var n notes.Note
	_, err := c.do(ctx, "api.GetNote", http.MethodGet, notePath(id), nil, &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, req notes.UpdateNoteRequest) (notes.Note, error) {
	var n notes.Note
	_, err := c.do(ctx, "api.UpdateNote", http.MethodPatch, notePath(id), req, &n)
	return n, err
}

func (c *Client) TrashNote(ctx context.Context, id string) error {
	_, err := c.do(ctx, "api.TrashNote", http.MethodPatch, "/notes/trash/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *Client) ListTrash(ctx context.Context) ([]notes.Note, error) {
	var out []notes.Note
	_, err := c.do(ctx, "api.ListTrash", http.MethodGet, "/notes/trash", nil, &out)
	return out, err
}

func (c *Client) RestoreNote(ctx context.Context, id string) error {
	_, err := c.do(ctx, "api.RestoreNote", http.MethodPatch, "/notes/trash/"+url.PathEscape(id)+"/restore", nil, nil)
	return err
}

// DeleteNote removes a trashed note for good.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	_, err := c.do(ctx, "api.DeleteNote", http.MethodDelete, notePath(id)+"?permanent=true", nil, nil)
	return err
}

func (c *Client) SetVisibility(ctx context.Context, id string, v notes.Visibility) error {
	_, err := c.do(ctx, "api.SetVisibility", http.MethodPatch, notePath(id, string(v)), nil, nil)
	return err
}

func (c *Client) ListPublicNotes(ctx context.Context) ([]notes.Note, error) {
	var out []notes.Note
	_, err := c.Public().do(ctx, "api.ListPublicNotes", http.MethodGet, "/public/notes", nil, &out)
	return out, err
}

func (c *Client) GetPublicNote(ctx context.Context, id string) (notes.Note, error) {
	var n notes.Note
	_, err := c.Public().do(ctx, "api.GetPublicNote", http.MethodGet, "/public/notes/"+url.PathEscape(id), nil, &n)
	return n, err
}
