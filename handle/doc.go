// Package handle implements the response store behind the opaque handles
// handed across the C ABI.
//
// A handle is a generation-tagged slot identifier: the low 32 bits are the
// slot index plus one (so 0 is never a valid handle) and the high 32 bits
// are the slot's generation at bind time. Slots are recycled through a free
// list, but every recycle bumps the generation, so a stale handle held by
// the caller can never alias a response bound later.
//
// Each stored response carries a read cursor. Reads are forward-only: a
// read copies bytes starting at the cursor, advances it, and reports 0 once
// the body is exhausted. The body is a stream view, not a re-readable
// buffer; there is deliberately no seek or reset.
package handle
