// Package migrations holds the schema history. Importing it (usually for
// side effects) registers every migration with pkg/migration.
package migrations
