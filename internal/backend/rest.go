// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the client for the hosted TechTalk backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// =============================================================================
// TABLE HANDLE
// =============================================================================

// Table is a handle for row-level CRUD on one backend table. Queries are
// built with PostgREST-style filter operators (eq, neq, or) and executed
// as single independent HTTP requests: no transactions, no retries.
type Table struct {
	client *Client
	name   string
}

// From returns a CRUD handle for the named table.
func (c *Client) From(name string) *Table {
	return &Table{client: c, name: name}
}

func (t *Table) endpoint() string {
	return t.client.config.BaseURL + "/rest/v1/" + t.name
}

// =============================================================================
// SELECT
// =============================================================================

// SelectQuery accumulates filters for a row fetch.
type SelectQuery struct {
	table  *Table
	params url.Values
}

// Select starts a query returning the given columns ("*" for all).
func (t *Table) Select(columns string) *SelectQuery {
	q := &SelectQuery{table: t, params: url.Values{}}
	q.params.Set("select", columns)
	return q
}

// Eq keeps rows whose column equals value.
func (q *SelectQuery) Eq(column, value string) *SelectQuery {
	q.params.Set(column, "eq."+value)
	return q
}

// Neq keeps rows whose column does not equal value.
func (q *SelectQuery) Neq(column, value string) *SelectQuery {
	q.params.Set(column, "neq."+value)
	return q
}

// Or keeps rows matching the raw PostgREST boolean expression, e.g.
// "and(user1_id.eq.A,user2_id.eq.B),and(user1_id.eq.B,user2_id.eq.A)".
func (q *SelectQuery) Or(expr string) *SelectQuery {
	q.params.Set("or", "("+expr+")")
	return q
}

// OrderAsc orders results by column, ascending.
func (q *SelectQuery) OrderAsc(column string) *SelectQuery {
	q.params.Set("order", column+".asc")
	return q
}

// Limit caps the number of returned rows.
func (q *SelectQuery) Limit(n int) *SelectQuery {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Do executes the query and returns the raw rows. Decoding into typed
// entities is the caller's job (see the model package).
func (q *SelectQuery) Do(ctx context.Context) ([]json.RawMessage, error) {
	u := q.table.endpoint() + "?" + q.params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := q.table.client.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode rows", Cause: err}
	}
	return rows, nil
}

// =============================================================================
// INSERT
// =============================================================================

// Insert writes one row and returns the stored representation (the backend
// fills in generated columns: ids, created_at).
func (t *Table) Insert(ctx context.Context, row any) ([]json.RawMessage, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal row", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := t.client.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode inserted row", Cause: err}
	}
	return rows, nil
}

// =============================================================================
// UPDATE
// =============================================================================

// UpdateQuery accumulates filters for a row update.
type UpdateQuery struct {
	table  *Table
	patch  any
	params url.Values
}

// Update starts an update applying patch to every matching row.
func (t *Table) Update(patch any) *UpdateQuery {
	return &UpdateQuery{table: t, patch: patch, params: url.Values{}}
}

// Eq restricts the update to rows whose column equals value.
func (q *UpdateQuery) Eq(column, value string) *UpdateQuery {
	q.params.Set(column, "eq."+value)
	return q
}

// Do executes the update. The response body is not needed by any caller,
// so the minimal return preference keeps it empty.
func (q *UpdateQuery) Do(ctx context.Context) error {
	body, err := json.Marshal(q.patch)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal patch", Cause: err}
	}

	u := q.table.endpoint() + "?" + q.params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := q.table.client.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}
