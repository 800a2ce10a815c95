// Package output serializes generated objects to canonical YAML and writes
// them to their destinations.
//
//   - Serialization (serializer.go): deterministic key ordering with nil values and
//     empty maps stripped, for both plain maps and typed Kubernetes objects.
//
//   - Writers (writer.go): the [Writer] interface with [StdoutWriter] and
//     [FileWriter], plus [DirWriter], which writes one file per [Manifest]
//     into an output directory.
package output
