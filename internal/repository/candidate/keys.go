package candidate

import (
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

// DefaultPrefix namespaces every key the service owns.
const DefaultPrefix = "nearby:"

// Keyspace maps entity records to storage keys: <prefix><type>:<id>.
type Keyspace struct {
	prefix string
}

// NewKeyspace creates a keyspace. An empty prefix uses DefaultPrefix.
func NewKeyspace(prefix string) Keyspace {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keyspace{prefix: prefix}
}

// Prefix returns the namespace prefix.
func (k Keyspace) Prefix() string { return k.prefix }

// Key returns the storage key of one record.
func (k Keyspace) Key(t marker.Type, id string) string {
	return k.typePrefix(t) + id
}

// Pattern returns the SCAN glob matching every record of t.
func (k Keyspace) Pattern(t marker.Type) string {
	return escapeGlob(k.typePrefix(t)) + "*"
}

// ID strips the type prefix from a key.
func (k Keyspace) ID(t marker.Type, key string) string {
	return strings.TrimPrefix(key, k.typePrefix(t))
}

func (k Keyspace) typePrefix(t marker.Type) string {
	return k.prefix + string(t) + ":"
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
