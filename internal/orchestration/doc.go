// Package orchestration runs a progress race: it spawns the workers on a
// fixed-size pool, waits for all of them at a barrier and hands the resulting
// Summary to a presenter. Display and presentation are reached through the
// ProgressDisplay and ResultPresenter interfaces, so the package does not
// depend on any terminal code.
package orchestration
