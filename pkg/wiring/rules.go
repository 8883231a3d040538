package wiring

// MappingRule pairs a Mapping output with a Loader input.
type MappingRule struct {
	Output string
	Input  string
}

// BSDFRule pairs a Loader output with a BSDF input. ImageNode names the
// image node inside the Loader template whose image gates the link.
type BSDFRule struct {
	Output    string
	Input     string
	ImageNode string
}

// MappingRules is the Mapping to Loader socket table.
var MappingRules = []MappingRule{
	{Output: "Vector", Input: "Vector"},
	{Output: "Rotation Angle", Input: "Rotation Angle"},
}

// BSDFRules is the Loader to BSDF socket table.
var BSDFRules = []BSDFRule{
	{Output: "Base Color", Input: "Base Color", ImageNode: "Diffuse"},
	{Output: "Metalness", Input: "Metalness", ImageNode: "Metalness"},
	{Output: "Roughness", Input: "Roughness", ImageNode: "Roughness"},
	{Output: "Alpha", Input: "Alpha", ImageNode: "Alpha"},
	{Output: "Normal", Input: "Normal", ImageNode: "Normal"},
	{Output: "Displacement", Input: "Displacement", ImageNode: "Displacement"},
	{Output: "Transmission", Input: "Transmission", ImageNode: "Transmission"},
	{Output: "Ambient Occlusion", Input: "Ambient Occlusion", ImageNode: "AmbientOcclusion"},
	{Output: "Emission", Input: "Emission", ImageNode: "Emission"},
	{Output: "Subsurface Weight", Input: "Subsurface Weight", ImageNode: "Subsurface Weight"},
}
