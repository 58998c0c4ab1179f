// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault-keeper command-line client.
//
// Each invocation runs one command (register, login, list, save, get,
// health) against the server through an [adapter.ServerAdapter]. The session
// token is passed between invocations with the -token flag or the
// VAULT_TOKEN environment variable; the vault password is prompted for when
// it is not given as a flag.
package client
