// Package nautobot is the target inventory store.
//
// The store keeps one gorm table per entity type and enforces the referential rules
// of the target: rows may only point at existing rows, referenced rows cannot be
// deleted, and virtual chassis members need their master.
package nautobot
