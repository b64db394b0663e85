// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a single-screen player workflow:
//  1. A search input that debounces keystrokes before querying the catalog
//  2. A results list for browsing songs and loading them into the queue
//  3. A player bar that renders only once the active song and its media URL resolve
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed message structs.
// Debounced queries flow through a channel from the search pipeline, providing non-blocking query propagation while typing.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, n/p, +/-, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
