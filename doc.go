// # go-dock
//
// `go-dock` renders the API of a Go package tree as one cross-linked
// [Markdeep] document. Every package, source file, type and function gets a
// section with a stable anchor (`<Kind>-<qualified name>`), and argument types
// that name another documented element link straight to it.
//
// Input is either a directory of Go packages, loaded with
// `golang.org/x/tools/go/packages`, or an element manifest (`.yaml`, `.yml` or
// `.json`) produced by an external introspection step for another language.
//
// ## Usage
//
//	go run . [flags] <path>
//
// Examples:
//
//   - Document the current module into `<dir>.md.html`:
//
//     go run . .
//
//   - Document a manifest with the apidoc stylesheet and write to a file:
//
//     go run . --style apidoc -o docs/api.md.html api.yaml
//
//   - Preview in the terminal instead of writing a document:
//
//     go run . --show ./internal/namespace
//
// ## Supported Flags
//
//   - `--style NAME`: Markdeep stylesheet (default `journal`).
//   - `-o FILE`: write the document to `FILE`, or `-` for stdout.
//   - `--show`: render the Markdown body in the terminal.
//   - `--theme NAME`: terminal theme used by `--show`.
//   - `-u`: include unexported Go declarations.
//   - `--dedupe name|qualified`: how duplicate elements are detected. With
//     `name` (the default) the last element discovered under a short name wins,
//     so a re-export beats its definition.
//   - `-v`: debug logging, including every dropped duplicate.
//   - `--config FILE`: read settings from `FILE` instead of `./.go-dock.yaml`.
//
// Single-dash spellings of long flags (`-show`, `-style=dark`) are accepted.
// Every flag can also be set through `DOCK_<NAME>` environment variables or the
// config file; flags win over the environment, which wins over the file.
//
// ## Shell Completion
//
//	go run . completion bash        # bash
//	go run . completion zsh         # zsh
//	go run . completion fish | source
//	go run . completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	go run . gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
//
// [Markdeep]: https://casual-effects.com/markdeep/
package main
