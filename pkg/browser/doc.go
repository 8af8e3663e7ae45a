// Package browser manages live browser sessions through Playwright.
//
// The package is built around four pieces:
//
//  1. Registry: mutex-guarded bookkeeping of open sessions, the active
//     session pointer, and the concurrent-session capacity bound
//  2. Manager: session lifecycle — launching a browser for a requested
//     kind, registering it, and tearing it down again
//  3. Locator: validation and translation of (strategy, value) pairs into
//     Playwright selectors
//  4. Bounded wait: FindOne/FindMany, which poll the driver until an
//     element satisfies a condition or an explicit timeout elapses
//
// # Session Lifecycle
//
// Sessions follow this lifecycle:
//
//  1. Start: Manager.Start launches a browser process, wraps it in a
//     Session and registers it. The first registered session becomes the
//     active one, the implicit target of operations that name no session.
//  2. Use: operations read the driver handles and bump LastActivity.
//  3. Stop: Manager.Stop releases the driver handles and removes the
//     entry. If the active session is removed, the active pointer moves
//     to an arbitrary remaining session.
//  4. Shutdown: Manager.ShutdownAll closes everything best effort; one
//     stuck session never blocks teardown of the rest.
//
// A session present in the registry always holds a live driver handle;
// removal deletes the record rather than marking it dead.
//
// # Failure Contract
//
// Every failure that crosses the package boundary is an *Error carrying a
// kind from the closed taxonomy in errors.go. Classify is the single
// translation point for raw driver errors.
//
// # Concurrency
//
// The Registry is safe for concurrent use. Issuing two concurrent
// operations against the same session id is the caller's responsibility;
// the package does not serialize per-session driver access.
package browser
