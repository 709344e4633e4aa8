// Package bdio converts extracted dependency graphs into BDIO documents and
// writes them to disk.
//
// # Document Format
//
// A [Document] is a BDIO 1.1 "simple" document serialized as a JSON-LD
// array. The first entry is the bill-of-materials header, the second the
// project, followed by one entry per distinct component:
//
//	[
//	  {"@id": "uuid:...", "@type": "BillOfMaterials", "spdx:name": "app/1.0.0 Black Duck I/O Export", ...},
//	  {"@id": "http:npmjs/app/1.0.0", "@type": "Project", "name": "app", "revision": "1.0.0",
//	   "relationship": [{"related": "http:npmjs/lodash/4.17.21", "relationshipType": "DYNAMIC_LINK"}]},
//	  {"@id": "http:npmjs/lodash/4.17.21", "@type": "Component", "name": "lodash", ...}
//	]
//
// Components are keyed by their external identifier, so a dependency
// reachable through several parents is listed once while every edge to it
// is kept as a relationship.
//
// # Naming
//
// Output files are named <TYPE>_<name>_<version>_bdio.jsonld, with name and
// version passed through [EscapeForURI] so that spaces, slashes and other
// reserved characters never reach the filesystem.
//
// # Writing
//
// [Writer] applies project name/version overrides, replaces stale files,
// transforms each project root and serializes it. Any I/O failure is
// returned as an OUTPUT_ERROR; unlike backend failures it ends the run.
package bdio
