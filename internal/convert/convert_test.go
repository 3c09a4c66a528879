package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/uml-ddl/internal/ddl"
	"github.com/hurou927/uml-ddl/internal/diagram"
)

func writeDiagram(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.puml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const userOrder = `@startuml
class User
#id INT AUTO_INCREMENT
-name VARCHAR(255) NN
}
class Order
#id INT AUTO_INCREMENT
-user REF(user.id)
}
@enduml
`

func TestParseFile(t *testing.T) {
	got, err := ParseFile(writeDiagram(t, userOrder), Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "\nCREATE TABLE IF NOT EXISTS User (\nid INT AUTO_INCREMENT PRIMARY KEY,\nname VARCHAR(255)\n)  ENGINE=INNODB;\n"))
	assert.Contains(t, got, "\nCREATE TABLE IF NOT EXISTS Order (\nid INT AUTO_INCREMENT PRIMARY KEY,\nuser INT,\nFOREIGN KEY (user) REFERENCES User(id)\n)  ENGINE=INNODB;\n")
	assert.Less(t, strings.Index(got, "TABLE IF NOT EXISTS User"), strings.Index(got, "TABLE IF NOT EXISTS Order"))
}

func TestParseFileOptions(t *testing.T) {
	got, err := ParseFile(writeDiagram(t, userOrder), Options{NotNull: true, QuoteIdentifiers: true})
	require.NoError(t, err)
	assert.Contains(t, got, "`name` VARCHAR(255) NOT NULL")
	assert.Contains(t, got, "FOREIGN KEY (`user`) REFERENCES `User`(`id`)")
}

func TestParseFileFKChecksGuard(t *testing.T) {
	plain, err := ParseFile(writeDiagram(t, userOrder), Options{})
	require.NoError(t, err)
	guarded, err := ParseFile(writeDiagram(t, userOrder), Options{FKChecksGuard: true})
	require.NoError(t, err)

	assert.Equal(t, ddl.DisableFKChecks+"\n"+plain+"\n"+ddl.EnableFKChecks+"\n", guarded)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.puml"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseFileUnreadable(t *testing.T) {
	_, err := ParseFile(t.TempDir(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable), "%v", err)
}

func TestParseFileUnresolvedReference(t *testing.T) {
	path := writeDiagram(t, "@startuml\nclass Order\n-user REF(user.id)\n}\n")
	got, err := ParseFile(path, Options{})
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ddl.ErrUnresolvedReference))
}

func TestParseFileStrict(t *testing.T) {
	path := writeDiagram(t, "@startuml\nclass User\n#id INT\n-name\n}\n")

	_, err := ParseFile(path, Options{})
	require.NoError(t, err)

	_, err = ParseFile(path, Options{Strict: true})
	var synErr *diagram.SyntaxError
	require.ErrorAs(t, err, &synErr)
	require.Len(t, synErr.Diagnostics, 1)
	assert.Equal(t, 4, synErr.Diagnostics[0].Line)
}

func TestDDLOptions(t *testing.T) {
	assert.Empty(t, Options{Strict: true}.DDLOptions())
	assert.Len(t, Options{NotNull: true, QuoteIdentifiers: true}.DDLOptions(), 2)
}
