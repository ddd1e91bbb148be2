package testutil

import (
	"path/filepath"
	"testing"

	"pizza-storefront/internal/checkout"
	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/session"
	"pizza-storefront/internal/shell"
)

// Harness wires a full storefront against a fake backend, with the token
// persisted to a per-test temp file.
type Harness struct {
	Backend  *Backend
	Client   *client.Client
	Session  *session.Store
	Checkout *checkout.Workflow
	Shell    *shell.Shell
	Tokens   *session.FileTokenStore
}

// NewHarness builds the component graph the way the binary does: token slot
// feeds the client, the session store owns both.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	backend := NewBackend(t)
	tokens := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	return build(t, backend, tokens)
}

// Rebuild wires a fresh component graph against the same backend and token
// store, simulating a process restart.
func Rebuild(t *testing.T, h *Harness) *Harness {
	t.Helper()
	return build(t, h.Backend, h.Tokens)
}

func build(t *testing.T, backend *Backend, tokens *session.FileTokenStore) *Harness {
	log := logger.NewTestLogger(t)

	slot := session.NewTokenSlot()
	api := client.New(config.APIConfig{BaseURL: backend.URL(), TimeoutMS: 5000}, slot, log)
	sess := session.NewStore(api, slot, tokens, log)
	wf := checkout.New(api, sess, log)

	return &Harness{
		Backend:  backend,
		Client:   api,
		Session:  sess,
		Checkout: wf,
		Shell:    shell.New(api, sess, wf, log),
		Tokens:   tokens,
	}
}
