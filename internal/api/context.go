package api

import (
	"context"

	"github.com/terra-clan/career-assessment/internal/workflow"
)

type contextKey string

const (
	studentContextKey contextKey = "student_session"
	editorContextKey  contextKey = "editor"
)

// StudentFromContext extracts the resolved student session
func StudentFromContext(ctx context.Context) *workflow.StudentSession {
	session, ok := ctx.Value(studentContextKey).(*workflow.StudentSession)
	if !ok {
		return nil
	}
	return session
}

// ContextWithStudent adds a student session to context
func ContextWithStudent(ctx context.Context, session *workflow.StudentSession) context.Context {
	return context.WithValue(ctx, studentContextKey, session)
}

// EditorFromContext extracts the resolved editor
func EditorFromContext(ctx context.Context) *workflow.Editor {
	editor, ok := ctx.Value(editorContextKey).(*workflow.Editor)
	if !ok {
		return nil
	}
	return editor
}

// ContextWithEditor adds an editor to context
func ContextWithEditor(ctx context.Context, editor *workflow.Editor) context.Context {
	return context.WithValue(ctx, editorContextKey, editor)
}
