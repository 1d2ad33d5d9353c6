package service_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/content"
	"github.com/spec-kit/content-gateway/internal/domain"
	"github.com/spec-kit/content-gateway/internal/events"
	"github.com/spec-kit/content-gateway/internal/service"
	apperrors "github.com/spec-kit/content-gateway/pkg/util"
)

// stubStore records fetches so tests can assert the store was never
// consulted on rejected requests, and can fail on demand.
type stubStore struct {
	fetchCalls int
	fetchErr   error
	files      map[string][]byte
}

func (s *stubStore) Fetch(_ context.Context, class content.Class, filename string) (*content.File, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	data, ok := s.files[string(class)+"/"+filename]
	if !ok {
		return nil, content.ErrNotFound
	}
	return &content.File{Data: data, ContentType: "text/html; charset=utf-8"}, nil
}

func (s *stubStore) List(_ context.Context, class content.Class) ([]string, error) {
	prefix := string(class) + "/"
	names := make([]string, 0)
	for key := range s.files {
		if strings.HasPrefix(key, prefix) {
			names = append(names, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func newGateway(t *testing.T) (*service.GatewayService, *stubStore) {
	t.Helper()
	store := &stubStore{files: map[string][]byte{
		string(content.ClassGatedPreview) + "/portfolio.html": []byte("<html>source</html>"),
		string(content.ClassFreePreview) + "/portfolio.html":  []byte("<html>preview</html>"),
		string(content.ClassGatedFull) + "/portfolio.html":    []byte("<html>full</html>"),
	}}
	gate := auth.NewRefererGate([]string{"localhost:8080"}, []string{"/premium.html"})
	return service.NewGatewayService(store, gate, events.NewInMemoryDispatcher()), store
}

func purchased() auth.ResolvedCredential {
	return auth.ResolvedCredential{
		State: auth.CredentialValid,
		Credential: &domain.Credential{
			SubjectID:    "user-1",
			Username:     "demo",
			HasPurchased: true,
		},
	}
}

func TestFetchRejectsTraversalBeforeStore(t *testing.T) {
	gateway, store := newGateway(t)

	for _, name := range []string{"../../etc/passwd.html", "a/b.html", "evil..html"} {
		_, _, err := gateway.Fetch(context.Background(), service.FetchRequest{
			Path:     "/content/" + name,
			Filename: name,
			Resolved: purchased(),
			Mode:     auth.ModeAPI,
		})
		require.Error(t, err, name)
		assert.Equal(t, "INVALID_IDENTIFIER", apperrors.ToDomainError(err).Code)
	}
	assert.Zero(t, store.fetchCalls, "store must never see rejected names")
}

func TestFetchDeniedWithoutPurchase(t *testing.T) {
	gateway, store := newGateway(t)

	file, decision, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:     "/content/portfolio.html",
		Filename: "portfolio.html",
		Resolved: auth.ResolvedCredential{State: auth.CredentialAbsent},
		Mode:     auth.ModeAPI,
	})
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, auth.EffectDeny, decision.Effect)
	assert.Equal(t, http.StatusForbidden, decision.Status)
	assert.Zero(t, store.fetchCalls)
}

func TestFetchAllowedForPurchased(t *testing.T) {
	gateway, _ := newGateway(t)

	file, decision, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:     "/content/portfolio.html",
		Filename: "portfolio.html",
		Resolved: purchased(),
		Mode:     auth.ModeAPI,
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed())
	assert.Equal(t, []byte("<html>source</html>"), file.Data)
}

func TestFetchRefererGateOverridesValidCredential(t *testing.T) {
	gateway, store := newGateway(t)

	file, decision, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:         "/serve-preview/portfolio.html",
		Filename:     "portfolio.html",
		Resolved:     purchased(),
		Mode:         auth.ModeAPI,
		CheckReferer: true,
		Referer:      "https://evil.example/hotlink",
	})
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, auth.EffectDeny, decision.Effect)
	assert.Equal(t, http.StatusForbidden, decision.Status)
	assert.Zero(t, store.fetchCalls)
}

func TestFetchRefererGateAllowsTrustedPage(t *testing.T) {
	gateway, _ := newGateway(t)

	file, decision, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:         "/serve-preview/portfolio.html",
		Filename:     "portfolio.html",
		Resolved:     auth.ResolvedCredential{State: auth.CredentialAbsent},
		Mode:         auth.ModeAPI,
		CheckReferer: true,
		Referer:      "http://localhost:8080/premium.html",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed())
	assert.Equal(t, []byte("<html>preview</html>"), file.Data)
}

func TestFetchNotFoundAfterAllow(t *testing.T) {
	gateway, _ := newGateway(t)

	_, _, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:     "/content/missing.html",
		Filename: "missing.html",
		Resolved: purchased(),
		Mode:     auth.ModeAPI,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestFetchStoreFailure(t *testing.T) {
	gateway, store := newGateway(t)
	store.fetchErr = errors.New("read: input/output error")

	_, _, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:     "/content/portfolio.html",
		Filename: "portfolio.html",
		Resolved: purchased(),
		Mode:     auth.ModeAPI,
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "STORE_FAILURE", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.NotContains(t, domainErr.Message, "input/output",
		"internal detail must stay out of the client message")
}

func TestFetchBrowseRedirectsUnauthenticated(t *testing.T) {
	gateway, store := newGateway(t)

	file, decision, err := gateway.Fetch(context.Background(), service.FetchRequest{
		Path:     "/premium/full/portfolio.html",
		Filename: "portfolio.html",
		Resolved: auth.ResolvedCredential{State: auth.CredentialAbsent},
		Mode:     auth.ModeBrowse,
	})
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, auth.EffectRedirect, decision.Effect)
	assert.Equal(t, auth.LoginPath, decision.Location)
	assert.Zero(t, store.fetchCalls)
}
