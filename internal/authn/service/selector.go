package service

import (
	"fmt"

	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// Selector identifies one authenticator of the current step, either by its
// server-assigned id or by its display name. An id takes precedence when
// both are set.
type Selector struct {
	AuthenticatorID string
	Name            string
}

func ByID(id string) Selector {
	return Selector{AuthenticatorID: id}
}

func ByName(name string) Selector {
	return Selector{Name: name}
}

// resolveSelector matches the selector against the current step's
// candidates. Name matches must be unique; the server can offer the same
// authenticator name through different identity providers.
func (s *Service) resolveSelector(sel Selector) (models.Authenticator, error) {
	candidates := s.currentCandidates()
	if len(candidates) == 0 {
		return models.Authenticator{}, dErrors.New(dErrors.CodeNoAuthenticatorSelected,
			"no flow step is pending; call Initialize first")
	}

	if sel.AuthenticatorID != "" {
		for _, a := range candidates {
			if a.AuthenticatorID == sel.AuthenticatorID {
				return a, nil
			}
		}
		return models.Authenticator{}, dErrors.New(dErrors.CodeAuthenticatorNotFound,
			fmt.Sprintf("authenticator %q is not offered by the current step", sel.AuthenticatorID))
	}

	if sel.Name == "" {
		return models.Authenticator{}, dErrors.New(dErrors.CodeInvalidInput,
			"selector needs an authenticator id or a name")
	}

	var matched []models.Authenticator
	for _, a := range candidates {
		if a.Name == sel.Name {
			matched = append(matched, a)
		}
	}
	switch len(matched) {
	case 0:
		return models.Authenticator{}, dErrors.New(dErrors.CodeAuthenticatorNotFound,
			fmt.Sprintf("authenticator %q is not offered by the current step", sel.Name))
	case 1:
		return matched[0], nil
	default:
		return models.Authenticator{}, dErrors.New(dErrors.CodeAmbiguousAuthenticator,
			fmt.Sprintf("%d authenticators named %q; select by id", len(matched), sel.Name))
	}
}
