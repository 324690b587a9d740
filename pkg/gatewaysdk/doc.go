/*
Package gatewaysdk provides a client SDK for the Zoho Analytics gateway.

# Overview

The package is organized around two main types:

  - SDKClient: unauthenticated operations and authentication flows
  - Session: authenticated data-plane operations with automatic token refresh

Create an SDKClient to interact with public endpoints and obtain a session:

	client := gatewaysdk.NewSDKClient("https://gateway.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Authenticate via the gateway's authorization code flow
	session, err := client.AuthenticateWithAuthorizationCode(ctx, clientID, redirectURI, scope)

Use a Session for data-plane calls. Sessions refresh their access token
transparently when it nears expiry:

	workspaces, err := session.ListWorkspaces(ctx)
	result, err := session.Query(ctx, gatewaysdk.QueryRequest{
	    WorkspaceID: "ws-1",
	    SQL:         "SELECT region, amount FROM sales",
	})

Callers holding a pre-shared API key can skip the OAuth flow entirely and use
NewAPIKeySession, which sends the key on every request instead of a bearer
token.

# Error Handling

Data-plane failures decode into *APIError carrying the gateway's stable error
kind (validation_error, auth_error, remote_query_error, parse_error,
timeout_error). Token endpoint failures decode into *OAuth2Error with the RFC
6749 error code.
*/
package gatewaysdk
