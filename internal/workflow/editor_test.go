package workflow

import (
	"errors"
	"testing"

	"github.com/terra-clan/career-assessment/internal/catalog"
	"github.com/terra-clan/career-assessment/internal/models"
)

func TestEditorAddClearsDraftOnlyOnSuccess(t *testing.T) {
	cat := catalog.New()
	ed, err := NewEditor(cat, models.AssessmentSkills)
	if err != nil {
		t.Fatalf("NewEditor failed: %v", err)
	}
	before := len(cat.Questions(models.AssessmentSkills))

	ed.SetDraft("   ")
	if ed.AddQuestion() {
		t.Fatal("blank draft should not be added")
	}
	if got := ed.Snapshot().Draft; got != "   " {
		t.Errorf("blank draft should be kept, got %q", got)
	}

	ed.SetDraft("  Rate your teamwork.  ")
	if !ed.AddQuestion() {
		t.Fatal("expected draft to be added")
	}

	snap := ed.Snapshot()
	if snap.Draft != "" {
		t.Errorf("draft should be cleared after add, got %q", snap.Draft)
	}
	if len(snap.Questions) != before+1 || snap.Questions[before] != "Rate your teamwork." {
		t.Errorf("unexpected questions %v", snap.Questions)
	}
}

func TestEditorRemoveQuestion(t *testing.T) {
	cat := catalog.New()
	ed, _ := NewEditor(cat, models.AssessmentPersonality)

	last := len(cat.Questions(models.AssessmentPersonality)) - 1
	if err := ed.RemoveQuestion(last); err != nil {
		t.Fatalf("RemoveQuestion failed: %v", err)
	}
	after := cat.Questions(models.AssessmentPersonality)

	if err := ed.RemoveQuestion(last); !errors.Is(err, catalog.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for stale index, got %v", err)
	}
	if got := cat.Questions(models.AssessmentPersonality); len(got) != len(after) {
		t.Errorf("stale remove changed the list: %v", got)
	}
}

func TestEditorSelectionIsIndependent(t *testing.T) {
	cat := catalog.New()
	ed, _ := NewEditor(cat, models.AssessmentCareer)
	student, _ := NewStudentSession(cat, newBlockingRecommender(), models.AssessmentCareer)

	if err := ed.SelectType(models.AssessmentSkills); err != nil {
		t.Fatalf("SelectType failed: %v", err)
	}
	if got := student.Snapshot().SelectedType; got != models.AssessmentCareer {
		t.Errorf("student selection changed to %s", got)
	}

	ed.SetDraft("Rate your time management.")
	ed.AddQuestion()
	if qs := cat.Questions(models.AssessmentCareer); qs[len(qs)-1] == "Rate your time management." {
		t.Error("question added to the wrong assessment")
	}

	if err := ed.SelectType("unknown"); !errors.Is(err, models.ErrUnknownAssessmentType) {
		t.Errorf("expected ErrUnknownAssessmentType, got %v", err)
	}
}
