package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/platform"
)

// AuditWriter persists audit entries. Implemented by core.AuditLogService.
type AuditWriter interface {
	Create(ctx context.Context, e *model.AuditLog) error
}

// AuditLogger is an async audit log writer.
type AuditLogger struct {
	writer AuditWriter
	logger zerolog.Logger
	ch     chan *model.AuditLog
	done   chan struct{}
	once   sync.Once
}

func NewAuditLogger(writer AuditWriter, logger zerolog.Logger) *AuditLogger {
	al := &AuditLogger{
		writer: writer,
		logger: logger,
		ch:     make(chan *model.AuditLog, 1024),
		done:   make(chan struct{}),
	}
	go al.drain()
	return al
}

func (al *AuditLogger) drain() {
	defer close(al.done)
	for entry := range al.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := al.writer.Create(ctx, entry); err != nil {
			al.logger.Error().Err(err).Str("path", entry.Path).Msg("failed to write audit log")
		}
		cancel()
	}
}

// Close stops accepting entries and waits until the queued ones are written.
func (al *AuditLogger) Close() {
	al.once.Do(func() { close(al.ch) })
	<-al.done
}

// Middleware returns a chi middleware that logs mutating API requests.
func (al *AuditLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		// Multipart uploads are not buffered; only JSON bodies are recorded.
		var bodyBytes []byte
		if r.Body != nil && isJSON(r) {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		resourceType, resourceID := extractResource(r.URL.Path)

		var adminID *string
		if claims := GetClaims(r.Context()); claims != nil && claims.Subject != "" {
			id := claims.Subject
			adminID = &id
		}

		var sanitizedBody json.RawMessage
		if len(bodyBytes) > 0 && json.Valid(bodyBytes) {
			sanitizedBody = sanitizeBody(bodyBytes)
		}

		select {
		case al.ch <- &model.AuditLog{
			ID:           platform.NewID(),
			AdminID:      adminID,
			Method:       r.Method,
			Path:         r.URL.Path,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			StatusCode:   sw.status,
			RequestBody:  sanitizedBody,
			CreatedAt:    time.Now().UTC(),
		}:
		default:
			al.logger.Warn().Msg("audit log buffer full, dropping entry")
		}
	})
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/json")
}

// extractResource returns the last resource type in the path and the ID
// following it, if any. Action segments after an ID are skipped:
//
//	/api/v1/products                     -> products
//	/api/v1/products/abc                 -> products, abc
//	/api/v1/products/abc/variants        -> variants
//	/api/v1/admin/payments/abc/refund    -> payments, abc
func extractResource(path string) (*string, *string) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(path, "/api/v1/"), "/"), "/")
	if len(parts) > 0 && (parts[0] == "admin" || parts[0] == "user") {
		parts = parts[1:]
	}

	var resourceType, resourceID *string
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i%2 == 0 {
			if resourceID != nil && actionSegments[part] {
				break
			}
			p := part
			resourceType = &p
			resourceID = nil
		} else {
			p := part
			resourceID = &p
		}
	}

	return resourceType, resourceID
}

// actionSegments are path verbs that act on the preceding resource.
var actionSegments = map[string]bool{
	"refund": true, "status": true,
}

// sensitiveFields are fields that should be redacted from audit logs.
var sensitiveFields = map[string]bool{
	"password": true, "password_hash": true, "secret": true, "token": true,
}

func sanitizeBody(body []byte) json.RawMessage {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}
	for k := range data {
		if sensitiveFields[k] {
			data[k] = "[REDACTED]"
		}
	}
	sanitized, _ := json.Marshal(data)
	return sanitized
}
