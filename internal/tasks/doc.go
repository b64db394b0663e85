// Package tasks orchestrates library maintenance operations with real-time progress reporting.
//
// # Core Operations
//
// The [LibraryTasks] interface defines two operations:
//
//  1. [LibraryTasks.Warm] : Prefetch the catalog into the local song cache
//     - Fetches the song listing from the backend
//     - Caches each song concurrently through a worker pool
//     - Returns per-song results including failures
//
//  2. [LibraryTasks.Export] : Write the catalog to disk
//     - Fetches the song listing for a query
//     - Writes CSV, Markdown, plain text, or JSON files
//     - Generates a manifest file summarizing the export
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [LibraryEngine] implements [LibraryTasks] with dependencies on:
//   - [services.Library] : the backend catalog client
//   - [SongCacher] : the local cache layer (repositories.SongCacheRepository)
package tasks
