// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows command results with --filter expressions.
//
// Filters are key-operator-target expressions, joined by commas or by the
// delimiter in DSCTL_FILTER_DELIM. A row is kept when it matches every filter.
//
// Operators, each negatable with a leading "!":
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric, time or string comparison)
//   - > : greater than (numeric, time or string comparison)
//   - @ : contains, for strings and lists
//   - / : regular expression match
//
// Time values compare against an RFC 3339 timestamp or a duration before
// now, so "started>24h" keeps the last day.
//
// Examples:
//
//   - "status=AVAILABLE"
//   - "key^inbox/,size>1048576"
//   - "name!@test"
package filters
