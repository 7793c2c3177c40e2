// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrIdentifierAlreadyExists is returned when account creation or
	// rotation fails because another account already holds the identifier.
	ErrIdentifierAlreadyExists = errors.New("identifier already exists")

	// ErrNoAccountWasFound is returned when a lookup expected to match an
	// account produces an empty result set.
	ErrNoAccountWasFound = errors.New("no account was found")

	// ErrBlobNotFound is returned when a get, update or delete targets a blob
	// (identified by account_id and name) that does not exist. A blob owned
	// by a different account is indistinguishable from a missing one.
	ErrBlobNotFound = errors.New("blob was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
