package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/content"
	"github.com/spec-kit/content-gateway/internal/events"
	apperrors "github.com/spec-kit/content-gateway/pkg/util"
)

// GatewayService orchestrates the access decision for content requests:
// validate the filename, classify the path, run the authorization
// predicate (plus the referer gate where the route asks for it), and only
// then touch the store.
type GatewayService struct {
	store      content.Store
	gate       *auth.RefererGate
	dispatcher events.Dispatcher
}

// NewGatewayService builds the gateway.
func NewGatewayService(store content.Store, gate *auth.RefererGate, dispatcher events.Dispatcher) *GatewayService {
	return &GatewayService{store: store, gate: gate, dispatcher: dispatcher}
}

// FetchRequest describes one gated content request.
type FetchRequest struct {
	// Path is the route path, used only for classification.
	Path     string
	Filename string
	Resolved auth.ResolvedCredential
	Mode     auth.Mode
	// CheckReferer enables the anti-hotlinking gate (direct-serve routes).
	CheckReferer bool
	Referer      string
}

// Fetch runs the full pipeline. The filename check happens before any
// credential work so traversal attempts never reach the store. A
// non-allow decision is returned as-is with a nil file; store errors are
// mapped to the structured taxonomy.
func (s *GatewayService) Fetch(ctx context.Context, req FetchRequest) (*content.File, auth.Decision, error) {
	if err := content.ValidateFilename(req.Filename); err != nil {
		return nil, auth.Decision{}, apperrors.NewInvalidIdentifier("invalid filename")
	}

	class := content.Classify(req.Path)
	decision := auth.Decide(req.Resolved, class, req.Mode)

	if decision.Allowed() && req.CheckReferer && !s.gate.Allow(req.Referer) {
		decision = auth.Deny(http.StatusForbidden, "FORBIDDEN", "access denied")
	}

	if !decision.Allowed() {
		if decision.Effect == auth.EffectDeny {
			s.publishDenied(ctx, req, class, decision)
		}
		return nil, decision, nil
	}

	file, err := s.store.Fetch(ctx, class, req.Filename)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, decision, apperrors.NewNotFound("file", nil)
		}
		return nil, decision, apperrors.NewStoreFailure(err)
	}
	return file, decision, nil
}

// List returns the .html entries for a listing area.
func (s *GatewayService) List(ctx context.Context, class content.Class) ([]string, error) {
	names, err := s.store.List(ctx, class)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return []string{}, nil
		}
		return nil, apperrors.NewStoreFailure(err)
	}
	return names, nil
}

func (s *GatewayService) publishDenied(ctx context.Context, req FetchRequest, class content.Class, decision auth.Decision) {
	if s.dispatcher == nil {
		return
	}
	subjectID := ""
	if req.Resolved.State == auth.CredentialValid {
		subjectID = req.Resolved.Credential.SubjectID
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccessDenied,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload: events.AccessDeniedPayload{
			Path:   req.Path,
			Class:  string(class),
			Reason: decision.Code,
		},
	})
}
