// Package ops implements the texture-map operators that act on a scene:
// batch loading a texture set into a tree's image nodes, applying or reading
// back sampler settings, adding the bundled node groups, and connecting a
// selection of groups.
//
// Every operator takes an [Env] describing the scene, the preferences and
// the tool settings. An operator that is inapplicable to the current state
// returns a PRECONDITION_NOT_MET error and changes nothing. Otherwise it
// returns a summary suitable for a single user-facing message.
//
// # Target tree
//
// Image-node operators act on the tree chosen by [TargetTree]: the whole
// material tree in FULL_MATERIAL mode, or the template tree of the active
// group node in ACTIVE_GROUP mode.
package ops
