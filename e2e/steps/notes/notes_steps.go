package notes

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	authservice "notely/internal/auth/service"
	notemodels "notely/internal/notes/models"
	notesservice "notely/internal/notes/service"
	id "notely/pkg/domain"
	"notely/pkg/testutil/fakeapi"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	API() *fakeapi.Server
	Auth() *authservice.Service
	Notes() *notesservice.List
	SetLastError(err error)
	PlanLimitPrompts() int
}

// RegisterSteps registers note-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &notesSteps{tc: tc}

	// Setup
	ctx.Step(`^I have created (\d+) notes?$`, steps.haveCreatedNotes)

	// Actions
	ctx.Step(`^I load my notes$`, steps.loadNotes)
	ctx.Step(`^I open the new note form$`, steps.beginCreate)
	ctx.Step(`^I create a note titled "([^"]*)" with content "([^"]*)"$`, steps.createNote)
	ctx.Step(`^I update the note titled "([^"]*)" to title "([^"]*)" and content "([^"]*)"$`, steps.updateNote)
	ctx.Step(`^I delete the note titled "([^"]*)"$`, steps.deleteNote)
	ctx.Step(`^I delete the note with id "([^"]*)"$`, steps.deleteNoteByID)

	// Assertions
	ctx.Step(`^my notes list should hold (\d+) notes?$`, steps.listShouldHold)
	ctx.Step(`^my notes list should include "([^"]*)"$`, steps.listShouldInclude)
	ctx.Step(`^my notes list should not include "([^"]*)"$`, steps.listShouldNotInclude)
	ctx.Step(`^the note titled "([^"]*)" should have content "([^"]*)"$`, steps.noteShouldHaveContent)
	ctx.Step(`^the usage label should read "([^"]*)"$`, steps.usageLabelShouldRead)
	ctx.Step(`^the upgrade prompt should have been shown (\d+) times?$`, steps.upgradePromptShown)
	ctx.Step(`^the tenant "([^"]*)" should hold (\d+) notes? on the server$`, steps.serverNoteCount)
}

type notesSteps struct {
	tc TestContext
}

func (s *notesSteps) haveCreatedNotes(ctx context.Context, n int) error {
	if err := s.tc.Notes().Load(ctx); err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		if _, err := s.tc.Notes().Create(ctx, fmt.Sprintf("Note %d", i), fmt.Sprintf("Content %d", i)); err != nil {
			return fmt.Errorf("create note %d: %w", i, err)
		}
	}
	s.tc.API().ResetRequests()
	return nil
}

func (s *notesSteps) loadNotes(ctx context.Context) error {
	s.tc.SetLastError(s.tc.Notes().Load(ctx))
	return nil
}

func (s *notesSteps) beginCreate(ctx context.Context) error {
	s.tc.SetLastError(s.tc.Notes().BeginCreate(ctx))
	return nil
}

func (s *notesSteps) createNote(ctx context.Context, title, content string) error {
	_, err := s.tc.Notes().Create(ctx, title, content)
	s.tc.SetLastError(err)
	return nil
}

func (s *notesSteps) find(title string) (notemodels.Note, error) {
	for _, n := range s.tc.Notes().Notes() {
		if n.Title == title {
			return n, nil
		}
	}
	return notemodels.Note{}, fmt.Errorf("no note titled %q in the local list", title)
}

func (s *notesSteps) updateNote(ctx context.Context, title, newTitle, content string) error {
	note, err := s.find(title)
	if err != nil {
		return err
	}
	_, err = s.tc.Notes().Update(ctx, note.ID, newTitle, content)
	s.tc.SetLastError(err)
	return nil
}

func (s *notesSteps) deleteNote(ctx context.Context, title string) error {
	note, err := s.find(title)
	if err != nil {
		return err
	}
	s.tc.SetLastError(s.tc.Notes().Delete(ctx, note.ID))
	return nil
}

func (s *notesSteps) deleteNoteByID(ctx context.Context, noteID string) error {
	s.tc.SetLastError(s.tc.Notes().Delete(ctx, id.NoteID(noteID)))
	return nil
}

func (s *notesSteps) listShouldHold(ctx context.Context, want int) error {
	if got := s.tc.Notes().Count(); got != want {
		return fmt.Errorf("local list holds %d notes, want %d", got, want)
	}
	return nil
}

func (s *notesSteps) listShouldInclude(ctx context.Context, title string) error {
	_, err := s.find(title)
	return err
}

func (s *notesSteps) listShouldNotInclude(ctx context.Context, title string) error {
	if _, err := s.find(title); err == nil {
		return fmt.Errorf("local list still includes %q", title)
	}
	return nil
}

func (s *notesSteps) noteShouldHaveContent(ctx context.Context, title, content string) error {
	note, err := s.find(title)
	if err != nil {
		return err
	}
	if note.Content != content {
		return fmt.Errorf("note %q has content %q, want %q", title, note.Content, content)
	}
	return nil
}

func (s *notesSteps) usageLabelShouldRead(ctx context.Context, want string) error {
	got := s.tc.Notes().Usage(s.tc.Auth().IsFreePlan(ctx))
	if got != want {
		return fmt.Errorf("usage label is %q, want %q", got, want)
	}
	return nil
}

func (s *notesSteps) upgradePromptShown(ctx context.Context, want int) error {
	if got := s.tc.PlanLimitPrompts(); got != want {
		return fmt.Errorf("upgrade prompt shown %d times, want %d", got, want)
	}
	return nil
}

func (s *notesSteps) serverNoteCount(ctx context.Context, slug string, want int) error {
	if got := s.tc.API().NoteCount(id.TenantSlug(slug)); got != want {
		return fmt.Errorf("server holds %d notes for %s, want %d", got, slug, want)
	}
	return nil
}
