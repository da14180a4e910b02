package convex

import (
	"fmt"
	"strings"

	"github.com/get-convex/convex-go/internal/wire"
)

// ID is an opaque reference to a document in a backend table. Its wire form
// is the table name and the document key joined by "|" inside a $id tagged
// object, so neither part may itself contain the separator.
type ID struct {
	TableName string
	ID        string
}

func (ID) Kind() Kind { return KindID }
func (ID) isValue()   {}

func (id ID) String() string { return fmt.Sprintf("ID(%q, %q)", id.TableName, id.ID) }

// wireString renders the $id payload.
func (id ID) wireString() string { return id.TableName + wire.IDSeparator + id.ID }

// validateID rejects IDs whose parts would make the wire payload ambiguous.
func validateID(id ID, path string) *Issue {
	if strings.Contains(id.TableName, wire.IDSeparator) || strings.Contains(id.ID, wire.IDSeparator) {
		iss := IssueAt(path, CodeInvalidFormat,
			fmt.Sprintf("document reference parts must not contain %q", wire.IDSeparator),
			map[string]any{"table": id.TableName, "id": id.ID})
		return &iss
	}
	return nil
}

// parseIDPayload splits a decoded $id payload. The payload must contain
// exactly one separator.
func parseIDPayload(s string) (ID, bool) {
	if strings.Count(s, wire.IDSeparator) != 1 {
		return ID{}, false
	}
	i := strings.Index(s, wire.IDSeparator)
	return ID{TableName: s[:i], ID: s[i+1:]}, true
}
