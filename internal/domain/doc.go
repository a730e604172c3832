// Package domain models environmental-incident reports from oil & gas
// operators in the Mendoza province.
//
// # Data Source
//
// Operators file incident communications as PDF reports under Res. 24-04 /
// Dec. 437-93. An upstream collector extracts each PDF's page text (form-feed
// separated) and publishes it to the Kafka source topic as a JSON envelope
// {file, text}. Every operator uses its own layout; the extract package holds
// one extractor per format.
//
// # Coordinate Conventions
//
// All normalized coordinates are WGS84 decimal degrees, negative for the
// southern and western hemispheres. Source documents disagree wildly:
//
//	YPF        three representations (DMS, decimal minutes, decimal degrees),
//	           unsigned with a hemisphere label — the direct decimal form is
//	           preferred and force-negated.
//	Pluspetrol signed decimal degrees, plus a Gauss-Krüger Faja 2 pair in
//	           meters kept as provenance.
//	PetSud     compact DMS, sometimes split across lines, with acute accents
//	           or doubled apostrophes as symbols; always negated.
//	Aconcagua  signed decimal degrees, the cleanest format.
//	PCR        DMS with an acute-accent minute mark and a trailing
//	           hemisphere letter; unsigned, force-negated.
//
// Validated coordinates must fall inside the Mendoza bounding box
// (lat −39..−32, lon −70..−67). The box catches the dropped-leading-digit
// OCR failure mode (−3.742 instead of −37.42).
//
// # Incident Identifiers
//
// Identifiers are the operator's communication number with an operator
// prefix (YPF-, PP-, PETSUD-, ACO-, PCR-) so raw numbers that collide across
// operators stay globally unique. Aconcagua reports carry no communication
// number, so the facility subtype code stands in (e.g. ACO-CH-28).
// Deterministic IDs make the Postgres sink's ON CONFLICT DO NOTHING insert
// idempotent under replay.
//
// # Magnitude
//
// The regulatory severity label (Mayor / Menor / No determinado). Stated in
// most formats; inferred from spill volume and hydrocarbon concentration by
// [InferMagnitude] when the document omits it (always for Aconcagua, as a
// fallback for PCR).
package domain
