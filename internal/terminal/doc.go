// Package terminal implements the interactive decision surface: numbered
// option menus, line prompts, and the single-keystroke confirm loop. When
// stdin is not a terminal it falls back to line-based input so the flow
// stays usable under pipes and tests.
package terminal
