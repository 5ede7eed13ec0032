// Package dice supplies the six-sided rolls that drive shot resolution.
//
// The engine never rolls dice itself. Callers roll with a Roller (or pass
// values supplied by a client) and hand both results to the engine. A Roller
// built from a fixed seed replays the same sequence, which the simulate
// command and tests rely on.
package dice
