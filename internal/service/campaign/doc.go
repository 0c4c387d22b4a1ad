// Package campaign implements campaign lifecycle management.
//
// The service layer owns input validation and target deduplication; the
// repository owns persistence and transactional atomicity. A campaign moves
// through nonexistent → created → (updated)* → deleted with no intermediate
// states.
//
// Repository implementations live in repository/postgres.
package campaign
