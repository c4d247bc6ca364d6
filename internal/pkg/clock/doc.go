// Package clock provides the time source of the service.
//
// Business code depends on Clocker and never calls time.Now directly, so that
// age computations can be pinned to a known instant. SystemClock is used in
// production, FixedClock in tests.
package clock
