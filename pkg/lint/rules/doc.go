// Package rules provides the built-in sharplint analyzers.
//
// Importing the package registers every analyzer with lint.DefaultRegistry.
//
// # Rules
//
//   - SL1001: condition-always-true - `if (true)` and, optionally, `while (true)`
//   - SL1002: remove-braces - braces around a single-line embedded statement
//   - SL1003: remove-redundant-parentheses - parentheses that do not affect evaluation
//   - SL1004: simplify-boolean-comparison - `flag == true`, `flag != false`
//   - SL1005: remove-empty-statement - stray `;`
//   - SL1006: remove-empty-else-clause - `else {}`
//   - SL1007: remove-empty-region - `#region` with nothing before `#endregion`
//   - SL1008: embedded-statement-on-separate-line - `if (x) y();` on one line
//
// SL1002, SL1003, SL1004, SL1006 and SL1007 also report fade-out diagnostics
// over the text a fix would delete.
//
// # Options
//
// SL1001 accepts `loops` (bool, default false) to also check `while` conditions.
package rules
