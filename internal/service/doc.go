// Package service contains the business services of the back office.
// Services orchestrate the store layer, enforce cross-entity invariants
// (delete guards, the last-super-admin rule, package lifecycle), and
// shape list results into pagination envelopes.
package service
