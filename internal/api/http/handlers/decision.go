package handlers

import (
	"github.com/spec-kit/content-gateway/internal/auth"
	apperrors "github.com/spec-kit/content-gateway/pkg/util"
)

// apperrorFromDecision turns a deny decision into the structured error the
// middleware renders.
func apperrorFromDecision(decision auth.Decision) error {
	return apperrors.NewDomainError(decision.Code, decision.Message, decision.Status, nil)
}
