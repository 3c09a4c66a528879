package apply

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/uml-ddl/internal/ddl"
)

type fakeExecutor struct {
	executed []string
	failOn   string
}

func (f *fakeExecutor) Exec(_ context.Context, sql string) error {
	f.executed = append(f.executed, sql)
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return errors.New("table exists with a different definition")
	}
	return nil
}

var stmts = []ddl.Statement{
	{Table: "Order", SQL: "CREATE TABLE IF NOT EXISTS Order (\nuser INT,\nFOREIGN KEY (user) REFERENCES User(id)\n)  ENGINE=INNODB;"},
	{Table: "User", SQL: "CREATE TABLE IF NOT EXISTS User (\nid INT PRIMARY KEY\n)  ENGINE=INNODB;"},
}

func TestApply(t *testing.T) {
	exec := &fakeExecutor{}
	a := New(exec, nil, true, false)

	require.NoError(t, a.Apply(context.Background(), stmts))

	want := []string{ddl.DisableFKChecks, stmts[0].SQL, stmts[1].SQL, ddl.EnableFKChecks}
	if diff := cmp.Diff(want, exec.executed); diff != "" {
		t.Errorf("executed mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"  2 table(s) ensured", "  Order", "  User"}, a.Summary())
}

func TestApplyFailureRestoresChecks(t *testing.T) {
	exec := &fakeExecutor{failOn: "TABLE IF NOT EXISTS User"}
	a := New(exec, nil, false, false)

	err := a.Apply(context.Background(), stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating table User")

	require.Len(t, exec.executed, 4)
	assert.Equal(t, ddl.EnableFKChecks, exec.executed[3])
	assert.Equal(t, []string{"  1 table(s) ensured", "  Order"}, a.Summary())
}

func TestApplyGuardFailure(t *testing.T) {
	exec := &fakeExecutor{failOn: "FOREIGN_KEY_CHECKS = 0"}
	err := New(exec, nil, false, false).Apply(context.Background(), stmts)
	require.ErrorContains(t, err, "disabling foreign key checks")
	assert.Len(t, exec.executed, 1)
}

func TestApplyDryRun(t *testing.T) {
	exec := &fakeExecutor{}
	var out bytes.Buffer
	a := New(exec, &out, false, true)

	require.NoError(t, a.Apply(context.Background(), stmts))
	assert.Empty(t, exec.executed)

	script := out.String()
	assert.True(t, strings.HasPrefix(script, ddl.DisableFKChecks+"\n"))
	assert.True(t, strings.HasSuffix(script, ddl.EnableFKChecks+"\n"))
	assert.Contains(t, script, "\n"+stmts[0].SQL+"\n")
	assert.Contains(t, script, "\n"+stmts[1].SQL+"\n")
}
