// Package domain defines the core business entities of the delivery
// back office: users, drivers, merchants, packages, and settings.
//
// Entities carry their own validation rules and lifecycle invariants.
// Persistence concerns live in the store package; domain types know
// nothing about the database.
package domain
