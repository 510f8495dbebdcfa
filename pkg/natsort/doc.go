// SPDX-License-Identifier: MPL-2.0

// Package natsort orders free-text labels the way a human reads them.
//
// Every label is classified into one of three shapes:
//
//   - Numeric: an optionally signed integer, decimal, fraction ("3/4") or mixed
//     fraction ("2 5/8"), optionally followed by a unit, optionally followed by
//     a separator ("-", "x", "~") and a second number with its unit
//     ("10-20 cm", "2 x 4 in").
//   - Sequential: a non-numeric lead with an optional numeric step and unit,
//     an optional separator with a second lead/step/unit, then optional
//     trailing text ("Size 2", "A-1 to B-5").
//   - Plain: anything else.
//
// Numeric labels sort before the others and are compared by unit, separator,
// then value. Text components are compared after trimming, lower-casing and
// stripping diacritics, so "Éclair" and "eclair" sort together.
//
// Sorting is stable: labels with equal keys keep their input order, which makes
// re-sorting an already sorted list a no-op.
package natsort
