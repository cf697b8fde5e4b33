package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notely/internal/notes/models"
	"notely/internal/platform/httpclient"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newTestClient(t *testing.T, status int, reply string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.method, rec.path, rec.body = r.Method, r.URL.EscapedPath(), string(body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return New(httpclient.New(server.URL+"/api", nil, httpclient.WithHTTPClient(server.Client()))), rec
}

const noteJSON = `{"_id":"n1","title":"Groceries","content":"milk","createdBy":{"_id":"u1","email":"user@acme.test"},
	"createdAt":"2026-01-05T14:30:00Z","updatedAt":"2026-01-05T14:30:00Z"}`

func TestList(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, "["+noteJSON+"]")

	notes, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/notes", rec.path)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID.String())
	assert.Equal(t, "user@acme.test", notes[0].AuthorEmail())
	assert.Equal(t, 2026, notes[0].CreatedAt.Year())
}

func TestListAcceptsStringCreatedBy(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `[
		{"_id":"n1","title":"a","content":"x","createdBy":"user@acme.test","createdAt":"2026-01-05T14:30:00Z"},
		{"_id":"n2","title":"b","content":"y","createdBy":"64b0c0ffee","createdAt":"2026-01-05T14:30:00Z"},
		{"_id":3,"title":"c","content":"z","createdAt":"2026-01-05T14:30:00Z"}
	]`)

	notes, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "user@acme.test", notes[0].AuthorEmail())
	assert.Equal(t, "Unknown", notes[1].AuthorEmail())
	assert.Equal(t, "64b0c0ffee", notes[1].CreatedBy.ID.String())
	assert.Equal(t, "Unknown", notes[2].AuthorEmail())
	assert.Equal(t, "3", notes[2].ID.String())
}

func TestGet(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, noteJSON)

	note, err := c.Get(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, "/api/notes/n1", rec.path)
	assert.Equal(t, "Groceries", note.Title)
}

func TestCreateSendsTitleAndContent(t *testing.T) {
	c, rec := newTestClient(t, http.StatusCreated, noteJSON)

	_, err := c.Create(context.Background(), models.NoteInput{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/notes", rec.path)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.body), &sent))
	assert.Equal(t, map[string]string{"title": "Groceries", "content": "milk"}, sent)
}

func TestUpdate(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, noteJSON)

	_, err := c.Update(context.Background(), "n1", models.NoteInput{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/notes/n1", rec.path)
	assert.JSONEq(t, `{"title":"T","content":"C"}`, rec.body)
}

func TestDeleteEscapesID(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"message":"Note deleted"}`)

	require.NoError(t, c.Delete(context.Background(), "a/b"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/notes/a%2Fb", rec.path)
}

func TestErrorsPassThrough(t *testing.T) {
	c, _ := newTestClient(t, http.StatusNotFound, `{"message":"Note not found"}`)

	_, err := c.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpclient.StatusCode(err))
	assert.Equal(t, "Note not found", httpclient.ServerMessage(err, "x"))
}
