// Package client calls the /notes endpoints.
package client

import (
	"context"
	"net/http"
	"net/url"

	"notely/internal/notes/models"
	"notely/internal/platform/httpclient"
	id "notely/pkg/domain"
)

const (
	routeNotes = "/notes"
	routeNote  = "/notes/:id"
)

// Requester is the slice of httpclient.Client this package needs.
type Requester interface {
	Do(ctx context.Context, r httpclient.Request, out any) error
}

type Client struct {
	http Requester
}

func New(http Requester) *Client {
	return &Client{http: http}
}

func notePath(noteID id.NoteID) string {
	return routeNotes + "/" + url.PathEscape(noteID.String())
}

// List returns every note of the caller's tenant.
func (c *Client) List(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Route: routeNotes, Path: routeNotes}, &notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) Get(ctx context.Context, noteID id.NoteID) (*models.Note, error) {
	var note models.Note
	err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Route: routeNote, Path: notePath(noteID)}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Create(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	var note models.Note
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Route:  routeNotes,
		Path:   routeNotes,
		Body:   in,
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Update(ctx context.Context, noteID id.NoteID, in models.NoteInput) (*models.Note, error) {
	var note models.Note
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPut,
		Route:  routeNote,
		Path:   notePath(noteID),
		Body:   in,
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Delete(ctx context.Context, noteID id.NoteID) error {
	return c.http.Do(ctx, httpclient.Request{Method: http.MethodDelete, Route: routeNote, Path: notePath(noteID)}, nil)
}
