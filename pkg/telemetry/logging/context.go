package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// DocumentKey is the context key for the design document being worked on.
	DocumentKey contextKey = "document"

	// OperationIDKey is the context key for the ID of one edit or check.
	OperationIDKey contextKey = "operation_id"

	// CommandKey is the context key for the CLI command name.
	CommandKey contextKey = "command"
)

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, document string) context.Context {
	return context.WithValue(ctx, DocumentKey, document)
}

// GetDocument retrieves the document path from the context.
func GetDocument(ctx context.Context) string {
	if document, ok := ctx.Value(DocumentKey).(string); ok {
		return document
	}
	return ""
}

// WithOperationID adds an operation ID to the context.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, OperationIDKey, id)
}

// GetOperationID retrieves the operation ID from the context.
func GetOperationID(ctx context.Context) string {
	if id, ok := ctx.Value(OperationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithCommand adds a command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the command name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
func extractContextFields(ctx context.Context) []slog.Attr {
	var fields []slog.Attr

	if command := GetCommand(ctx); command != "" {
		fields = append(fields, slog.String(string(CommandKey), command))
	}
	if document := GetDocument(ctx); document != "" {
		fields = append(fields, slog.String(string(DocumentKey), document))
	}
	if id := GetOperationID(ctx); id != "" {
		fields = append(fields, slog.String(string(OperationIDKey), id))
	}

	return fields
}
