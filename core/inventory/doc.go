// Package inventory holds the typed entity graph shared by every stage of a sync run.
//
// A Snapshot is one system's view of the inventory at sync time. It is made of
// one bucket per entity Type, each keyed by a composite natural key derived from
// the entity's identity fields. The same real-world object produces the same key
// whether it was loaded from Device42 or from the target store, which is what lets
// the reconcile package compare two snapshots key by key.
//
// # Entities
//
// Every entity type is a plain struct that doubles as the gorm model of its target
// table. Entities are immutable values: they reference each other by key (weak
// references), never by pointer, so cycles such as Device <-> Port or
// Circuit <-> CircuitTermination do not exist in memory.
//
//	Building  name
//	Room      building | name
//	Rack      building | room | name
//	Device    name
//	Port      device | name
//	IPAddress vrf | address
//	VLAN      site | vid | name
//
// # Dependency order
//
// Order lists the types parents first. Creates and updates follow Order, deletes
// follow Reverse.
//
// # Issues
//
// Problems found while loading are not errors: they are recorded as Issue values
// (KeyDerivationError, AmbiguousResolution, UnresolvedReference, TargetRejected,
// DuplicateKey) and end up in the run report.
package inventory
