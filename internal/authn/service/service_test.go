package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

func (s *ServiceSuite) TestInitialize() {
	s.Run("publishes the first step", func() {
		s.SetupTest()
		s.initializeWith("flow-1", basicAuthenticator(), githubAuthenticator())

		state := s.service.State().(models.StateUnauthenticated)
		s.Equal("flow-1", state.Flow.FlowID)
		s.Len(state.Flow.NextStep.Authenticators, 2)
	})

	s.Run("authorize failure becomes the error state", func() {
		s.SetupTest()
		netErr := dErrors.New(dErrors.CodeNetwork, "connection refused")
		s.mockTransport.EXPECT().Authorize(gomock.Any()).Return(nil, netErr)

		err := s.service.Initialize(context.Background())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNetwork))

		state := s.service.State().(models.StateError)
		s.True(dErrors.HasCode(state.Cause, dErrors.CodeNetwork))
	})

	s.Run("success without a step is a protocol violation", func() {
		s.SetupTest()
		resp := successResponse("abc123")
		s.mockTransport.EXPECT().Authorize(gomock.Any()).Return(resp, nil)
		s.mockTracker.EXPECT().SetFlowID(resp.FlowID)
		s.mockTracker.EXPECT().Classify(gomock.Any(), resp).
			Return(models.FlowSuccess{AuthData: *resp.AuthData}, nil)

		err := s.service.Initialize(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeProtocol))
	})

	s.Run("a superseded initialize does not overwrite the newer flow", func() {
		s.SetupTest()
		resp := stepResponse("flow-old", basicAuthenticator())
		s.mockTransport.EXPECT().Authorize(gomock.Any()).DoAndReturn(
			func(context.Context) (*models.FlowResponse, error) {
				// A second Initialize starts while this one is on the wire.
				s.service.generation.Add(1)
				return resp, nil
			})

		err := s.service.Initialize(context.Background())
		s.Require().ErrorIs(err, errFlowSuperseded)
		s.IsType(models.StateLoading{}, s.service.State())
	})
}

func (s *ServiceSuite) TestAuthenticateWith() {
	ctx := context.Background()

	s.Run("basic credentials complete the flow", func() {
		s.SetupTest()
		s.initializeWith("flow-1", basicAuthenticator())

		resp := successResponse("abc123")
		s.mockTracker.EXPECT().FlowID().Return("flow-1", nil)
		s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-1",
			basicAuthenticator().AuthenticatorID,
			map[string]string{"username": "kim", "password": "hunter2"},
		).Return(resp, nil)
		s.mockTracker.EXPECT().Classify(gomock.Any(), resp).
			Return(models.FlowSuccess{AuthData: *resp.AuthData}, nil)
		s.mockTokens.EXPECT().ExchangeAndSave(gomock.Any(), "abc123").
			Return(&models.TokenState{AccessToken: "at"}, nil)
		s.mockTracker.EXPECT().Reset()

		err := s.service.AuthenticateWith(ctx, ByName("Username & Password"),
			models.BasicAuthParams{Username: "kim", Password: "hunter2"})
		s.Require().NoError(err)
		s.IsType(models.StateAuthenticated{}, s.service.State())
	})

	s.Run("wrong credentials terminate the flow", func() {
		s.SetupTest()
		s.initializeWith("flow-1", basicAuthenticator())

		failResp := &models.FlowResponse{FlowID: "flow-1", FlowStatus: models.FlowStatusFailIncomplete}
		s.mockTracker.EXPECT().FlowID().Return("flow-1", nil)
		s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-1", gomock.Any(), gomock.Any()).
			Return(failResp, nil)
		s.mockTracker.EXPECT().Classify(gomock.Any(), failResp).
			Return(nil, dErrors.New(dErrors.CodeAuthenticationIncomplete, "flow terminated"))

		err := s.service.AuthenticateWith(ctx, ByID(basicAuthenticator().AuthenticatorID),
			models.BasicAuthParams{Username: "kim", Password: "wrong"})
		s.True(dErrors.HasCode(err, dErrors.CodeAuthenticationIncomplete))

		state := s.service.State().(models.StateError)
		s.True(dErrors.HasCode(state.Cause, dErrors.CodeAuthenticationIncomplete))
	})

	s.Run("an intermediate step replaces the candidates", func() {
		s.SetupTest()
		s.initializeWith("flow-1", basicAuthenticator())

		nextResp := stepResponse("flow-1", totpAuthenticator())
		s.mockTracker.EXPECT().FlowID().Return("flow-1", nil)
		s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-1", gomock.Any(), gomock.Any()).
			Return(nextResp, nil)
		s.mockTracker.EXPECT().Classify(gomock.Any(), nextResp).
			Return(stepFlow("flow-1", totpAuthenticator()), nil)

		err := s.service.AuthenticateWith(ctx, ByName("Username & Password"),
			models.BasicAuthParams{Username: "kim", Password: "hunter2"})
		s.Require().NoError(err)

		state := s.service.State().(models.StateUnauthenticated)
		s.Equal("TOTP", state.Flow.NextStep.Authenticators[0].Name)

		// The first step's authenticators are no longer selectable.
		_, err = s.service.resolveSelector(ByName("Username & Password"))
		s.True(dErrors.HasCode(err, dErrors.CodeAuthenticatorNotFound))
	})

	s.Run("missing required params fail before the wire", func() {
		s.SetupTest()
		s.initializeWith("flow-1", basicAuthenticator())

		err := s.service.AuthenticateWith(ctx, ByName("Username & Password"),
			models.BasicAuthParams{Username: "kim"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("without a pending step the selection is rejected", func() {
		s.SetupTest()
		err := s.service.AuthenticateWith(ctx, ByName("Username & Password"),
			models.BasicAuthParams{Username: "kim", Password: "hunter2"})
		s.True(dErrors.HasCode(err, dErrors.CodeNoAuthenticatorSelected))
	})

	s.Run("token exchange failure keeps the error retryable", func() {
		s.SetupTest()
		s.initializeWith("flow-1", basicAuthenticator())

		resp := successResponse("abc123")
		s.mockTracker.EXPECT().FlowID().Return("flow-1", nil)
		s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-1", gomock.Any(), gomock.Any()).
			Return(resp, nil)
		s.mockTracker.EXPECT().Classify(gomock.Any(), resp).
			Return(models.FlowSuccess{AuthData: *resp.AuthData}, nil)
		s.mockTokens.EXPECT().ExchangeAndSave(gomock.Any(), "abc123").
			Return(nil, dErrors.New(dErrors.CodeTokenExchange, "invalid_grant"))

		err := s.service.AuthenticateWith(ctx, ByName("Username & Password"),
			models.BasicAuthParams{Username: "kim", Password: "hunter2"})
		s.True(dErrors.HasCode(err, dErrors.CodeTokenExchange))
		s.IsType(models.StateError{}, s.service.State())
	})
}

func (s *ServiceSuite) TestTwoStepFlow() {
	ctx := context.Background()
	s.SetupTest()
	s.initializeWith("flow-2", basicAuthenticator())

	// Step one: basic credentials advance to a TOTP step.
	totpResp := stepResponse("flow-2", totpAuthenticator())
	s.mockTracker.EXPECT().FlowID().Return("flow-2", nil)
	s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-2",
		basicAuthenticator().AuthenticatorID, gomock.Any()).Return(totpResp, nil)
	s.mockTracker.EXPECT().Classify(gomock.Any(), totpResp).
		Return(stepFlow("flow-2", totpAuthenticator()), nil)

	s.Require().NoError(s.service.AuthenticateWith(ctx, ByName("Username & Password"),
		models.BasicAuthParams{Username: "kim", Password: "hunter2"}))

	// Step two: the TOTP token completes the flow.
	doneResp := successResponse("code-2")
	s.mockTracker.EXPECT().FlowID().Return("flow-2", nil)
	s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-2",
		totpAuthenticator().AuthenticatorID,
		map[string]string{"token": "123456"},
	).Return(doneResp, nil)
	s.mockTracker.EXPECT().Classify(gomock.Any(), doneResp).
		Return(models.FlowSuccess{AuthData: *doneResp.AuthData}, nil)
	s.mockTokens.EXPECT().ExchangeAndSave(gomock.Any(), "code-2").
		Return(&models.TokenState{AccessToken: "at"}, nil)
	s.mockTracker.EXPECT().Reset()

	s.Require().NoError(s.service.AuthenticateWith(ctx, ByName("TOTP"),
		models.TOTPParams{Token: "123456"}))
	s.IsType(models.StateAuthenticated{}, s.service.State())
}

func (s *ServiceSuite) TestAuthenticateWithRedirect() {
	ctx := context.Background()

	s.Run("callback params feed the authenticate round", func() {
		s.SetupTest()
		s.initializeWith("flow-3", githubAuthenticator())

		callbackParams := map[string]string{"code": "gh-code", "state": "st-1"}
		s.mockRedirects.EXPECT().Begin(gomock.Any(), githubAuthenticator()).
			Return(callbackParams, nil)

		resp := successResponse("code-3")
		s.mockTracker.EXPECT().FlowID().Return("flow-3", nil)
		s.mockTransport.EXPECT().Authenticate(gomock.Any(), "flow-3",
			githubAuthenticator().AuthenticatorID, callbackParams).Return(resp, nil)
		s.mockTracker.EXPECT().Classify(gomock.Any(), resp).
			Return(models.FlowSuccess{AuthData: *resp.AuthData}, nil)
		s.mockTokens.EXPECT().ExchangeAndSave(gomock.Any(), "code-3").
			Return(&models.TokenState{AccessToken: "at"}, nil)
		s.mockTracker.EXPECT().Reset()

		s.Require().NoError(s.service.AuthenticateWithRedirect(ctx, ByName("Github")))
		s.IsType(models.StateAuthenticated{}, s.service.State())
	})

	s.Run("redirect wait failure becomes the error state", func() {
		s.SetupTest()
		s.initializeWith("flow-3", githubAuthenticator())

		s.mockRedirects.EXPECT().Begin(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeTimeout, "redirect wait timed out"))

		err := s.service.AuthenticateWithRedirect(ctx, ByName("Github"))
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
		s.IsType(models.StateError{}, s.service.State())
	})
}

func (s *ServiceSuite) TestHandleRedirectCallback() {
	ctx := context.Background()

	s.Run("delivers to the correlator", func() {
		s.SetupTest()
		s.mockRedirects.EXPECT().Complete("app://callback?code=x").Return(nil)
		s.NoError(s.service.HandleRedirectCallback(ctx, "app://callback?code=x"))
	})

	s.Run("failures reach the observable", func() {
		s.SetupTest()
		cause := dErrors.New(dErrors.CodeNoAuthenticatorSelected, "no redirect wait is pending")
		s.mockRedirects.EXPECT().Complete(gomock.Any()).Return(cause)

		err := s.service.HandleRedirectCallback(ctx, "app://callback?code=x")
		s.Require().ErrorIs(err, cause)

		state := s.service.State().(models.StateError)
		s.ErrorIs(state.Cause, cause)
	})
}

func (s *ServiceSuite) TestLogout() {
	ctx := context.Background()

	s.Run("clears tokens and returns to the initial state", func() {
		s.SetupTest()
		s.mockTokens.EXPECT().IDToken(gomock.Any()).Return("idt", nil)
		s.mockTransport.EXPECT().Logout(gomock.Any(), "idt").Return(nil)
		s.mockTokens.EXPECT().Clear(gomock.Any()).Return(nil)
		s.mockTracker.EXPECT().Reset()

		s.Require().NoError(s.service.Logout(ctx))
		s.IsType(models.StateInitial{}, s.service.State())
	})

	s.Run("a rejected logout keeps the tokens", func() {
		s.SetupTest()
		s.mockTokens.EXPECT().IDToken(gomock.Any()).Return("idt", nil)
		s.mockTransport.EXPECT().Logout(gomock.Any(), "idt").
			Return(dErrors.New(dErrors.CodeLogout, "server rejected logout"))
		// No Clear expectation: tokens must remain untouched.

		err := s.service.Logout(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeLogout))
		s.IsType(models.StateError{}, s.service.State())
	})

	s.Run("without tokens there is nothing to log out", func() {
		s.SetupTest()
		s.mockTokens.EXPECT().IDToken(gomock.Any()).
			Return("", dErrors.Wrap(errors.New("no token record"), dErrors.CodeNotFound, "no session"))

		err := s.service.Logout(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestIsAuthenticated() {
	ctx := context.Background()
	s.SetupTest()
	s.mockTokens.EXPECT().IsAuthenticated(gomock.Any()).Return(true)
	s.True(s.service.IsAuthenticated(ctx))
}
