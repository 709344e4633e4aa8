// Package rust extracts Cargo dependency graphs from Cargo.lock.
//
// Every package in the lock file without a source is a local crate (the
// root package or a workspace member) and becomes one project. Its
// children are the crates it depends on, resolved by name, or by name and
// version when the lock file lists several versions of a crate.
package rust
