// Package corpusdb reads the canonical token table from a SQLite
// transcription database.
//
// Ingestion and transcriber-track filtering happen upstream; the external
// collaborator publishes one canonical, already-filtered token table and
// this package only consumes it. Reads always order by (folio, line,
// position) so the stream is deterministic regardless of insert order.
//
// The database is opened read-mostly with the usual pragmas (WAL,
// synchronous=NORMAL, busy timeout, foreign keys) and a single connection,
// and the schema is applied idempotently so tests can build fixture
// databases through the same path.
package corpusdb
