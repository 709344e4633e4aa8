// Package javascript extracts npm dependency graphs.
//
// # Lock files
//
// When package-lock.json (or npm-shrinkwrap.json) is present the full
// installed tree is read from it. All lock file versions are supported:
//
//   - v2 and v3 list installs in a flat "packages" map keyed by their
//     node_modules path; dependencies are resolved the way Node does,
//     walking up from the requiring package's directory.
//   - v1 nests "dependencies" objects and names requirements in "requires".
//
// # Manifest fallback
//
// Without a lock file only package.json is read. The project's direct
// dependencies (including devDependencies) become children of the project
// node, using the declared range as version.
package javascript
