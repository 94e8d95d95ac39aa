// Package germinal provides the toolkit-independent logic of the Germinal
// terminal: URL detection, input classification and dispatch, font zoom,
// palette and settings handling, and helper process spawning.
//
// This package contains:
//   - URL matching over a line of terminal text
//   - Key, button and scroll classification into actions
//   - A dispatcher that runs actions against a terminal view
//   - The settings store (TOML file with live reload)
//   - An output filter for bell detection and bold suppression
//
// Terminal emulation itself is provided by purfecterm; the GTK frontend
// lives in the gtk subpackage and the text console frontend in tty.
package germinal
