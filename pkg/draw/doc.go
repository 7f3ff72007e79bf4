/*
Package draw validates raw historical records and normalizes them into domain.Draw values.

A Record is whatever an external collaborator (a file loader, a database row
mapper) produced: an identity plus a loosely typed collection of values. The
Normalizer accepts every integer kind, integral floats (as produced by JSON and
YAML decoders), json.Number and decimal strings, and rejects anything else with
an *InvalidDrawError that wraps domain.ErrInvalidDrawFormat.
*/
package draw
