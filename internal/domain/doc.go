// Package domain models the Deutscher Wetterdienst (DWD) weather warning
// feed.
//
// # Data Source
//
// Warnings come from the DWD WarnWetter app backend, a single JSON
// document at https://www.dwd.de/DWD/warnungen/warnapp/json/warnings.json.
// The body is not plain JSON: it is wrapped in a JavaScript function call,
//
//	warnWetter.loadWarnings({ ... });
//
// intended for JSONP consumption by the DWD's own web frontend. The exact
// prefix and suffix are stripped by [UnwrapEnvelope]; any deviation is
// treated as upstream format drift and rejected outright.
//
// # Wire Conventions
//
// Timestamps:
//
//	All times are integer epoch milliseconds. The response carries its own
//	generation time ("time"); each warning carries "start" and an optional
//	"end". A null end means the warning has no defined expiry and is
//	treated as indefinitely active. Conversion to UTC calendar time
//	rejects values outside year 1–9999 instead of silently wrapping.
//
// Grouping:
//
//	The "warnings" object is keyed by region-group identifiers, each
//	holding an array of warning records. The grouping only reflects how
//	the DWD shards its map display; it carries no semantics for consumers
//	and is flattened away during mapping. The final order is ascending by
//	start time.
//
// Severity:
//
//	"level" climbs from 1 (official weather information) through 5
//	(extreme severe weather warning). "type" distinguishes the product
//	family, e.g. regular warnings versus coastal and flood products; it is
//	carried through as the category without interpretation.
//
// Advance notices:
//
//	"vorabInformation" mirrors the warnings structure for pre-warnings
//	issued ahead of severe weather. It is decoded structurally and
//	otherwise ignored.
//
// # Activity
//
// A warning is current when its end is absent or still in the future at
// the moment of evaluation; see [Warning.IsCurrent]. The evaluation clock
// is swappable via [SetClock] for deterministic tests.
package domain
