// Package domain models the global mean sea level (GMSL) series shown by the
// sea-level rise chart.
//
// # Data Source
//
// Satellite altimetry measurements come from the NASA GSFC global mean sea
// level dataset, exported as a comma-delimited table with a header row. Only
// two of its columns are used:
//
//	index 2  YearPlusFraction   fractional calendar year, e.g. 1993.011526
//	index 8  GMSLWithGIA        sea level in mm with Glacial Isostatic
//	                            Adjustment applied, e.g. -37.9
//
// Rows are roughly every ten days from 1993 onward. The GIA correction is
// already applied upstream and is passed through unchanged.
//
// # Series Format
//
// The compiled series is a headerless, semicolon-delimited file with a decimal
// comma, one measurement per line:
//
//	1993,011526;-37,9
//	1993,038692;-38,4
//
// Years carry six decimals and values one decimal. Because neither field can
// contain a semicolon, no quoting or escaping is needed. This canonical line
// is the contract with the chart front-end; see [FormatLine] and [ParseLine].
//
// # Periods
//
// The series spans three eras, classified by year for reporting only:
//
//	historical   year < 1993           tide-gauge reconstructions
//	satellite    1993 <= year < 2025   altimetry
//	projection   year >= 2025          synthetic rows, see [LinearRise]
//
// # Identity
//
// A measurement has no identity beyond its canonical line. Two rows for the
// same year with different values are both kept; two rows that render to the
// same line collapse into one (see [Dedupe]).
package domain
