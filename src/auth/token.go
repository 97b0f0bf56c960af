package auth

import (
	"sync"

	"exchangeclient/src/security"

	logger "github.com/sirupsen/logrus"
)

// TokenSource yields the bearer credential attached to every outgoing API
// request. A false second return means no credential is available and
// credential-gated operations must short-circuit before the network layer.
type TokenSource interface {
	Token() (string, bool)
}

// StaticTokenSource holds a token issued by the authentication service
// (external collaborator). Clearing it models token expiry/logout.
type StaticTokenSource struct {
	mu    sync.RWMutex
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *StaticTokenSource) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *StaticTokenSource) Clear() {
	s.Set("")
}

// FromEnv builds a token source from the environment: a plain token wins,
// otherwise an encrypted one is opened with the credentials key. An empty
// source is returned when neither is set, so the engine can start and
// surface Unauthenticated on the first gated call.
func FromEnv() TokenSource {
	cfg := GetConfig()

	if cfg.APIToken != "" {
		return NewStaticTokenSource(cfg.APIToken)
	}

	if cfg.EncryptedAPIToken != "" {
		token, err := security.DecryptString(cfg.EncryptedAPIToken)
		if err != nil {
			logger.WithError(err).Error("failed to decrypt API token")
			return NewStaticTokenSource("")
		}
		return NewStaticTokenSource(token)
	}

	logger.Warn("no API token configured")
	return NewStaticTokenSource("")
}
