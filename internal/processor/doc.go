// Package processor contains the core business logic for turning a word
// list into a flashcard deck. It orchestrates translation, example
// sentence generation and deck file writing, isolating per-word failures
// so one bad word never aborts the batch.
package processor
