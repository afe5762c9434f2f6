package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"flowauth/internal/authn/models"
	"flowauth/internal/authn/service"
)

// runPrompt drives an interactive login session on the terminal.
func runPrompt(ctx context.Context, session *service.Service, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "commands: login, status, logout, quit")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "login":
			if err := runLogin(ctx, session, scanner, out); err != nil {
				fmt.Fprintf(out, "login failed: %v\n", err)
			}
		case "status":
			if session.IsAuthenticated(ctx) {
				fmt.Fprintln(out, "authenticated")
			} else {
				fmt.Fprintln(out, "not authenticated")
			}
		case "logout":
			if err := session.Logout(ctx); err != nil {
				fmt.Fprintf(out, "logout failed: %v\n", err)
			} else {
				fmt.Fprintln(out, "logged out")
			}
		case "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintf(out, "unknown command %q\n", strings.TrimSpace(scanner.Text()))
		}
	}
}

// runLogin walks the flow step by step until it completes or fails.
func runLogin(ctx context.Context, session *service.Service, scanner *bufio.Scanner, out io.Writer) error {
	if err := session.Initialize(ctx); err != nil {
		return err
	}

	for {
		state, ok := session.State().(models.StateUnauthenticated)
		if !ok {
			break
		}
		step := state.Flow.NextStep

		fmt.Fprintln(out, "choose an authenticator:")
		for i, a := range step.Authenticators {
			fmt.Fprintf(out, "  %d) %s (%s)\n", i+1, a.Name, a.IdpID)
		}
		fmt.Fprint(out, "? ")
		if !scanner.Scan() {
			return io.EOF
		}
		idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || idx < 1 || idx > len(step.Authenticators) {
			fmt.Fprintln(out, "pick a number from the list")
			continue
		}
		chosen := step.Authenticators[idx-1]

		if chosen.IsRedirect() {
			fmt.Fprintln(out, "continue in your browser; waiting for the callback...")
			if err := session.AuthenticateWithRedirect(ctx, service.ByID(chosen.AuthenticatorID)); err != nil {
				return err
			}
			continue
		}

		params := models.RawParams{}
		for _, name := range promptedParams(chosen) {
			fmt.Fprintf(out, "%s: ", name)
			if !scanner.Scan() {
				return io.EOF
			}
			params[name] = strings.TrimSpace(scanner.Text())
		}
		if err := session.AuthenticateWith(ctx, service.ByID(chosen.AuthenticatorID), params); err != nil {
			return err
		}
	}

	if _, ok := session.State().(models.StateAuthenticated); ok {
		fmt.Fprintln(out, "authenticated")
	}
	return nil
}

// promptedParams returns the authenticator's inputs in the server's declared
// render order, falling back to the flat required-params list.
func promptedParams(a models.Authenticator) []string {
	if a.Metadata == nil || len(a.Metadata.Params) == 0 {
		return a.RequiredParams
	}
	descriptors := make([]models.ParamDescriptor, len(a.Metadata.Params))
	copy(descriptors, a.Metadata.Params)
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Order < descriptors[j].Order
	})
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Param)
	}
	return names
}
