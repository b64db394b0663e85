// Package player implements the active-track resolution pipeline and playback session state.
//
// [Session] holds the currently active song id, the ordered queue, and the
// volume. Queue advancement wraps at the boundaries: the successor of the
// last entry is the first, and the predecessor of the first is the last.
// Setting an active id that no backend record resolves is a valid, quiet
// state; nothing renders and nothing errors.
//
// [Resolver] turns an active id into renderable state: the song record from
// the backend, then a playable media URL and a display image URL derived
// from the record's asset paths. Absence at any step yields empty values,
// never errors.
//
// [BuildView] applies the render gate consumed by UI layers: a view exists
// only when the active id, the song, and the media URL are all present. A
// missing image is not a gating condition; it falls back to a placeholder.
// The view's Key is the media URL, so a changed media URL always produces a
// distinct playback instance rather than an in-place update.
package player
