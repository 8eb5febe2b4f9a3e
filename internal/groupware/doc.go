// Package groupware provides access to a remote groupware server's
// HTTP-based calendaring, contacts and task API.
//
// The package exposes one Gateway operation per backend capability:
//   - Calendar: save (iCalendar PUT) and search
//   - Addressbook: save (vCard PUT) and search
//   - Infolog/tasks: write (JSON POST) and search
//   - Mail: send (stub, see SendEmail)
//
// Two implementations satisfy the Gateway contract. The live Client talks
// HTTP Basic to the configured backend, caching a session marker after a
// successful credential check against the root endpoint and retrying an
// operation exactly once after a 401. The Mock returns deterministic
// synthetic data without any network access and retains saved records in
// memory, so the tool and transport layers can be exercised offline.
package groupware
