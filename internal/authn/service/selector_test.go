package service

import (
	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

func (s *ServiceSuite) TestResolveSelector() {
	github := githubAuthenticator()
	googleSameName := models.Authenticator{
		AuthenticatorID: "R29vZ2xlT0lEQw",
		Name:            "Github", // same display name via a different idp
		IdpID:           "Enterprise",
		RequiredParams:  []string{"code", "state"},
	}

	s.Run("id match wins over name", func() {
		s.SetupTest()
		s.service.setCandidates([]models.Authenticator{basicAuthenticator(), github})

		a, err := s.service.resolveSelector(Selector{
			AuthenticatorID: github.AuthenticatorID,
			Name:            "Username & Password",
		})
		s.Require().NoError(err)
		s.Equal(github.AuthenticatorID, a.AuthenticatorID)
	})

	s.Run("unique name match", func() {
		s.SetupTest()
		s.service.setCandidates([]models.Authenticator{basicAuthenticator(), github})

		a, err := s.service.resolveSelector(ByName("Github"))
		s.Require().NoError(err)
		s.Equal(github.AuthenticatorID, a.AuthenticatorID)
	})

	s.Run("duplicate names are ambiguous", func() {
		s.SetupTest()
		s.service.setCandidates([]models.Authenticator{github, googleSameName})

		_, err := s.service.resolveSelector(ByName("Github"))
		s.True(dErrors.HasCode(err, dErrors.CodeAmbiguousAuthenticator))
	})

	s.Run("unknown id", func() {
		s.SetupTest()
		s.service.setCandidates([]models.Authenticator{basicAuthenticator()})

		_, err := s.service.resolveSelector(ByID("bogus"))
		s.True(dErrors.HasCode(err, dErrors.CodeAuthenticatorNotFound))
	})

	s.Run("unknown name", func() {
		s.SetupTest()
		s.service.setCandidates([]models.Authenticator{basicAuthenticator()})

		_, err := s.service.resolveSelector(ByName("Passkey"))
		s.True(dErrors.HasCode(err, dErrors.CodeAuthenticatorNotFound))
	})

	s.Run("empty selector", func() {
		s.SetupTest()
		s.service.setCandidates([]models.Authenticator{basicAuthenticator()})

		_, err := s.service.resolveSelector(Selector{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("no pending step", func() {
		s.SetupTest()
		_, err := s.service.resolveSelector(ByName("Github"))
		s.True(dErrors.HasCode(err, dErrors.CodeNoAuthenticatorSelected))
	})
}
