// Package model defines the design tree: modules, elements and the slots
// that hold them.
//
// Every element has a definition from the metadata dictionary and sits in
// exactly one slot of its container, identified by a ContainerContext. The
// root element of a tree belongs to a Module (report design or library).
// Libraries included by another module are read-only and their elements
// report IsRootIncludedByModule.
//
// The package performs no containment validation: ContainerContext.Add and
// Remove only maintain the tree. Callers check insertions with the
// containment package first.
package model
