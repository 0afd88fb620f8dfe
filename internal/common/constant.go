// Package common contains shared constants used across MicroLearn client
// components: storage keys, header names and the client-side route surface.
package common

// AuthTokenKey is the fixed key under which the bearer token is persisted.
const AuthTokenKey = "authToken"

// AuthTokenSavedAtKey records when the token was last written.
const AuthTokenSavedAtKey = "authTokenSavedAt"

// AuthorizationHeaderName carries the bearer credential on protected calls.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix.
const BearerScheme = "Bearer"
