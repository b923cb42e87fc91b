// Package latest stores the most recent reading per sensor subject.
//
// The fusion node subscribes to every sensor subject, stores each arriving
// reading here, and periodically assembles a flat measurement vector in
// fleet-plan order. Subjects that have not published yet read as zeros, so
// the vector always has its full fixed width.
//
// Store provides command-query separation:
//
// Queries (read-only):
//   - Get(subject) - Latest reading
//   - Len() - Number of subjects seen
//   - Vector(subjects, widths) - Assemble a measurement vector
//
// Commands (mutations):
//   - Set(subject, values) - Replace the latest reading
//
// Thread-safe with RWMutex: subscription callbacks write while the sampling
// loop reads.
package latest
