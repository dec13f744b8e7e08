// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package sales loads and cleans delimited sales files.

A file is read against an explicit Schema:

  - header cells are normalized (trimmed, lowercased, spaces to underscores)
  - two header cells that normalize to the same name are rejected
  - required schema columns must be present; optional ones that are absent load as null
  - in strict mode, header columns the schema does not declare are rejected;
    otherwise they are kept as text after the schema columns
  - date cells are read day-first (03/04/2024 is 3 April 2024); ISO dates are also accepted
  - empty cells are null; only fields with a Default (postal_code, profit) are filled

Any unparseable cell stops the load with a *ParseError; there is no row-skipping.

Usage:

	table, report, err := sales.Load(ctx, "sales.csv", sales.DefaultSchema(), sales.DefaultOptions())
	if err != nil {
	    return err
	}
	logging.Info().Int("rows", report.Rows).Msg("Loaded sales file")
*/
package sales
