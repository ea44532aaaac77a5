// Package normalizer cleans and verifies the identity fields of a candidate
// record: email domain, email deliverability, phone format and carrier data,
// country and city. The pure normalizers never fail; the networked checkers
// degrade to "unknown" or "false" when the remote side misbehaves.
package normalizer
