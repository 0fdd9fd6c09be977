/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

type dirRow struct {
	device    string
	oidset    *string
	frequency *int64
}

type fakeRows struct {
	rows []dirRow
	idx  int
}

func (*fakeRows) Close()                                       {}
func (*fakeRows) Err() error                                   { return nil }
func (*fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (*fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (*fakeRows) Values() ([]any, error)                       { return nil, nil }
func (*fakeRows) RawValues() [][]byte                          { return nil }
func (*fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++

	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	*(dest[0].(*string)) = row.device
	*(dest[1].(**string)) = row.oidset
	*(dest[2].(**int64)) = row.frequency

	return nil
}

type fakeQuerier struct {
	sql  string
	args []any
	rows []dirRow
	err  error
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql, q.args = sql, args
	if q.err != nil {
		return nil, q.err
	}

	return &fakeRows{rows: q.rows}, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func TestCNPGDevice(t *testing.T) {
	q := &fakeQuerier{rows: []dirRow{
		{device: "r1", oidset: strPtr("Errors"), frequency: intPtr(300)},
		{device: "r1", oidset: strPtr("FastPollHC"), frequency: intPtr(30)},
	}}
	closed := false
	dir := NewCNPG(q, func() { closed = true }, logger.NewTestLogger())

	rec, err := dir.Device(context.Background(), "r1")
	require.NoError(t, err)
	assert.Contains(t, q.sql, "WHERE d.name = $1")
	assert.Equal(t, []any{"r1"}, q.args)

	set, err := rec.OIDSet("FastPollHC")
	require.NoError(t, err)
	assert.Equal(t, int64(30), set.Frequency)

	require.NoError(t, dir.Close())
	assert.True(t, closed)
}

func TestCNPGDeviceWithoutOIDSets(t *testing.T) {
	dir := NewCNPG(&fakeQuerier{rows: []dirRow{{device: "bare"}}}, nil, logger.NewTestLogger())

	rec, err := dir.Device(context.Background(), "bare")
	require.NoError(t, err)
	assert.Empty(t, rec.OIDSets)

	_, err = rec.OIDSet("FastPollHC")
	assert.True(t, errors.Is(err, models.ErrUnknownOIDSet))
}

func TestCNPGUnknownDevice(t *testing.T) {
	dir := NewCNPG(&fakeQuerier{}, nil, logger.NewTestLogger())

	_, err := dir.Device(context.Background(), "ghost")
	assert.True(t, errors.Is(err, models.ErrUnknownDevice))
}

func TestCNPGQueryError(t *testing.T) {
	boom := errors.New("connection reset")
	dir := NewCNPG(&fakeQuerier{err: boom}, nil, logger.NewTestLogger())

	_, err := dir.Device(context.Background(), "r1")
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, models.ErrUnknownDevice))
}
