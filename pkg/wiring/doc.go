// Package wiring connects the K-Tools node groups of a material.
//
// A selection of two or three group instances is sorted into roles by the
// name of each instance's template: a Mapping source, a Maps Loader hub and
// a BSDF sink. Sockets are then paired by the static tables [MappingRules]
// and [BSDFRules]:
//
//	Mapping --(Vector, Rotation Angle)--> Loader --(Base Color ... Subsurface Weight)--> BSDF
//
// A link is created only when both named sockets exist and the destination
// input is free. Loader to BSDF pairs are additionally gated on the Loader's
// template: the internal image node that feeds the output must exist and
// hold an image, so unpopulated channels stay unwired.
//
// The resolver never removes or replaces a link. Running it again on an
// unchanged graph creates nothing.
//
// # Usage
//
//	r := wiring.New(host, wiring.WithLogger(logger))
//	res, err := r.Resolve(ctx, selection)
//	if err != nil {
//	    // PRECONDITION_NOT_MET or MISSING_ROLE, nothing was changed
//	}
//	fmt.Println(res.Message())
//
// The resolver depends only on the [Host] interface; pkg/shadergraph
// provides an in-memory implementation.
package wiring
