// SPDX-License-Identifier: MPL-2.0

// Package modident provides the identity types shared by every fmm package.
//
// A mod is identified by its name and, optionally, an exact semantic version:
//   - [Version]: a strict three-component semantic version ("1.2.3").
//   - [Ident]: a (name, optional version) pair with ordering and formatting rules.
//
// On the command line an Ident is written as "Name" or "Name@1.2.3".
package modident
